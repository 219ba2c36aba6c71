// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-record-sync/internal/cache"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/internal/validators"
	"github.com/MKhiriev/go-record-sync/internal/workers"
	"github.com/MKhiriev/go-record-sync/models"
)

type localDataCoordinator struct {
	caches      *cache.LocalCacheCoordinator
	persistence store.LocalPersistence
	queue       *workers.SerialQueue
	validator   validators.Validator

	defaultZoneName string

	logger *logger.Logger
}

// NewLocalDataCoordinator returns a [LocalDataCoordinator] over caches that
// writes every mutation through to persistence. Private records added
// without a zone are placed in defaultZoneName.
func NewLocalDataCoordinator(caches *cache.LocalCacheCoordinator, persistence store.LocalPersistence, defaultZoneName string, log *logger.Logger) LocalDataCoordinator {
	return &localDataCoordinator{
		caches:          caches,
		persistence:     persistence,
		queue:           workers.NewSerialQueue("local-records"),
		validator:       validators.NewRecordDataValidator(),
		defaultZoneName: defaultZoneName,
		logger:          log,
	}
}

func (c *localDataCoordinator) Close() {
	c.queue.Close()
}

// owner returns the cache owner of scope for sess.
func owner(sess *models.Session, scope models.Scope) (string, error) {
	if !scope.IsValid() {
		return "", fmt.Errorf("%w: %s", models.ErrUnknownScope, scope)
	}
	if !scope.IsZoned() {
		return "", nil
	}
	user, ok := sess.CurrentUser()
	if !ok {
		return "", ErrNotAuthenticated
	}
	return user, nil
}

func (c *localDataCoordinator) scopedCache(ctx context.Context, sess *models.Session, scope models.Scope) (*cache.ScopedCache, error) {
	owner, err := owner(sess, scope)
	if err != nil {
		return nil, err
	}
	return c.caches.ScopedCache(ctx, owner, scope)
}

func (c *localDataCoordinator) RetrieveRecord(ctx context.Context, sess *models.Session, id string, scope models.Scope, depth int) (*models.Record, error) {
	return workers.Call(ctx, c.queue, func() (*models.Record, error) {
		return c.retrieveRecord(context.WithoutCancel(ctx), sess, id, scope, depth)
	})
}

func (c *localDataCoordinator) retrieveRecord(ctx context.Context, sess *models.Session, id string, scope models.Scope, depth int) (*models.Record, error) {
	sc, err := c.scopedCache(ctx, sess, scope)
	if err != nil {
		return nil, err
	}

	r, ok := sc.Record(id)
	if !ok {
		return nil, nil
	}
	if err = c.resolve(sc, r, depth); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *localDataCoordinator) RetrieveRecords(ctx context.Context, sess *models.Session, q Query, scope models.Scope, depth int) ([]*models.Record, error) {
	return workers.Call(ctx, c.queue, func() ([]*models.Record, error) {
		sc, err := c.scopedCache(context.WithoutCancel(ctx), sess, scope)
		if err != nil {
			return nil, err
		}

		out := make([]*models.Record, 0)
		for _, r := range sc.Records() {
			if q.Type != "" && r.Type != q.Type {
				continue
			}
			if q.Predicate != nil {
				match, err := q.Predicate(r)
				if err != nil {
					return nil, err
				}
				if !match {
					continue
				}
			}
			if err = c.resolve(sc, r, depth); err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	})
}

// resolve attaches cached targets to the unresolved references of r, hop by
// hop, up to depth hops. Nullify references whose target is gone are
// cleared; a missing cascade target fails the resolution.
func (c *localDataCoordinator) resolve(sc *cache.ScopedCache, root *models.Record, depth int) error {
	type hop struct {
		record *models.Record
		left   int
	}

	seen := map[string]struct{}{root.ID: {}}
	frontier := []hop{{record: root, left: depth}}
	for len(frontier) > 0 {
		h := frontier[0]
		frontier = frontier[1:]
		if h.left == 0 {
			continue
		}
		r := h.record

		if pid := r.ParentID(); pid != "" && r.Parent() == nil {
			if parent, ok := sc.Record(pid); ok && models.SameZone(r.Zone, parent.Zone) {
				r.ResolveParent(parent)
			}
		}

		for _, ref := range r.UnresolvedReferences() {
			target, ok := sc.Record(ref.RecordID)
			if ok && !models.SameZone(r.Zone, target.Zone) {
				c.logger.Warn().
					Str("func", "localDataCoordinator.resolve").
					Str("record_id", r.ID).
					Str("target_id", target.ID).
					Msg("relationship target lives in another zone")
				ok = false
			}
			if !ok {
				if ref.Behavior == models.DeleteCascade {
					return fmt.Errorf("%w: %s.%s -> %s", ErrDanglingReference, r.ID, ref.Key, ref.RecordID)
				}
				r.SetRelatedRecord(ref.Key, nil, ref.Behavior)
				continue
			}
			r.ResolveRelatedRecord(ref.Key, target)
		}

		next := h.left - 1
		if h.left < 0 {
			next = h.left
		}
		for _, t := range r.RelatedRecords() {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			frontier = append(frontier, hop{record: t, left: next})
		}
	}
	return nil
}

func (c *localDataCoordinator) AddRecord(ctx context.Context, sess *models.Session, scope models.Scope, record *models.Record) error {
	return c.AddRecords(ctx, sess, scope, record)
}

func (c *localDataCoordinator) AddRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...*models.Record) error {
	return c.queue.Do(ctx, func() error {
		return c.addRecords(context.WithoutCancel(ctx), sess, scope, records)
	})
}

func (c *localDataCoordinator) AddRecordsAsync(sess *models.Session, scope models.Scope, records []*models.Record, done func(error)) error {
	return workers.SubmitWithResult(c.queue, func() (struct{}, error) {
		return struct{}{}, c.addRecords(context.Background(), sess, scope, records)
	}, func(_ struct{}, err error) {
		if done != nil {
			done(err)
		}
	})
}

func (c *localDataCoordinator) RetrieveRecordAsync(sess *models.Session, id string, scope models.Scope, depth int, done func(*models.Record, error)) error {
	return workers.SubmitWithResult(c.queue, func() (*models.Record, error) {
		return c.retrieveRecord(context.Background(), sess, id, scope, depth)
	}, done)
}

func (c *localDataCoordinator) addRecords(ctx context.Context, sess *models.Session, scope models.Scope, records []*models.Record) error {
	owner, err := owner(sess, scope)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	sc, err := c.caches.ScopedCache(ctx, owner, scope)
	if err != nil {
		return err
	}

	g := &addition{
		cache:       sc,
		scope:       scope,
		defaultZone: models.ZoneID{Name: c.defaultZoneName, Owner: owner},
		visited:     make(map[string]struct{}),
	}
	for _, r := range records {
		g.add(r, true)
	}

	data := make([]models.RecordData, 0, len(g.batch))
	entries := make([]models.PendingEntry, 0, len(g.batch))
	for _, r := range g.batch {
		data = append(data, r.Data())
		entries = append(entries, models.PendingEntry{RecordID: r.ID, Kind: models.PendingSave, Zone: r.Zone})
	}
	if err = c.persistence.SaveRecords(ctx, owner, scope, data...); err != nil {
		return fmt.Errorf("persist added records: %w", err)
	}
	if err = c.persistence.SetPending(ctx, owner, scope, entries...); err != nil {
		return fmt.Errorf("persist pending saves: %w", err)
	}

	for _, r := range g.batch {
		if cached, ok := sc.Record(r.ID); ok && cached != r {
			cached.Overwrite(r)
			r = cached
		} else {
			sc.Put(r)
		}
		sc.MarkChanged(r)
	}

	c.logger.Debug().
		Str("func", "localDataCoordinator.addRecords").
		Stringer("scope", scope).
		Int("records", len(g.batch)).
		Msg("records added")
	return nil
}

// addition walks the graph reachable from the records of one AddRecords call
// and collects what has to be stored.
type addition struct {
	cache       *cache.ScopedCache
	scope       models.Scope
	defaultZone models.ZoneID
	visited     map[string]struct{}
	batch       []*models.Record
}

func (g *addition) add(r *models.Record, explicit bool) {
	if _, ok := g.visited[r.ID]; ok {
		return
	}
	g.visited[r.ID] = struct{}{}

	r.AssignScope(g.scope)
	if g.scope.IsZoned() && r.Zone == nil {
		r.Zone = g.zoneFor(r)
	}
	checkStructure(r)

	neighbours := append(r.RelatedRecords(), r.Children()...)
	if p := r.Parent(); p != nil {
		neighbours = append(neighbours, p)
	}
	for _, n := range neighbours {
		if n.Zone == nil && g.scope.IsZoned() && r.Zone != nil {
			z := *r.Zone
			n.Zone = &z
		}
		if g.scope == models.ScopeShared && n.ShareID == "" && n.ParentID() == "" && r.Zone != nil {
			n.ShareID = r.Zone.Name
		}
		if n.Scope() != models.ScopeUnset && n.Scope() != g.scope {
			models.Violate(models.RuleScopeMismatch, "record %s (%s) related to record %s (%s)", r.ID, g.scope, n.ID, n.Scope())
		}
		if !models.SameZone(r.Zone, n.Zone) {
			models.Violate(models.RuleZoneMismatch, "record %s in zone %v related to record %s in zone %v", r.ID, r.Zone, n.ID, n.Zone)
		}
		if cached, ok := g.cache.Record(n.ID); ok && cached == n {
			continue
		}
		g.add(n, false)
	}

	if explicit {
		r.Touch()
	}
	g.batch = append(g.batch, r)
}

// zoneFor picks the zone of an unzoned record: the closest ancestor's zone or
// share, then its own share, then the default zone for private records.
func (g *addition) zoneFor(r *models.Record) *models.ZoneID {
	for p := r.Parent(); p != nil; p = p.Parent() {
		if p.Zone != nil {
			z := *p.Zone
			return &z
		}
		if p.ShareID != "" {
			return &models.ZoneID{Name: p.ShareID, Owner: g.defaultZone.Owner}
		}
	}
	if r.ShareID != "" {
		return &models.ZoneID{Name: r.ShareID, Owner: g.defaultZone.Owner}
	}
	if g.scope == models.ScopePrivate {
		z := g.defaultZone
		return &z
	}
	return nil
}

// checkStructure enforces the scope-specific shape of r.
func checkStructure(r *models.Record) {
	switch r.Scope() {
	case models.ScopePublic:
		if r.Zone != nil || r.ShareID != "" {
			models.Violate(models.RuleStructure, "public record %s must have no zone and no share", r.ID)
		}
	case models.ScopeShared:
		if r.ShareID == "" && r.ParentID() == "" {
			models.Violate(models.RuleStructure, "shared record %s needs a share or a parent", r.ID)
		}
		if r.Zone == nil {
			models.Violate(models.RuleStructure, "shared record %s has no zone", r.ID)
		}
	case models.ScopePrivate:
	default:
		models.Violate(models.RuleUnreachable, "record %s has no scope after assignment", r.ID)
	}
}

func (c *localDataCoordinator) RemoveRecord(ctx context.Context, sess *models.Session, scope models.Scope, record *models.Record) error {
	return c.RemoveRecords(ctx, sess, scope, record)
}

func (c *localDataCoordinator) RemoveRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...*models.Record) error {
	return c.queue.Do(ctx, func() error {
		ctx := context.WithoutCancel(ctx)
		owner, err := owner(sess, scope)
		if err != nil {
			return err
		}
		sc, err := c.caches.ScopedCache(ctx, owner, scope)
		if err != nil {
			return err
		}

		var removed []*models.Record
		for _, r := range records {
			if r.Scope() != models.ScopeUnset && r.Scope() != scope {
				models.Violate(models.RuleScopeMismatch, "record %s is in %s scope, not %s", r.ID, r.Scope(), scope)
			}
			cached, ok := sc.Record(r.ID)
			if !ok {
				continue
			}
			removed = append(removed, cached)
		}
		if len(removed) == 0 {
			return nil
		}

		ids := make([]string, 0, len(removed))
		entries := make([]models.PendingEntry, 0, len(removed))
		for _, r := range removed {
			ids = append(ids, r.ID)
			entries = append(entries, models.PendingEntry{RecordID: r.ID, Kind: models.PendingDelete, Zone: r.Zone})
		}
		if err = c.persistence.DeleteRecords(ctx, owner, scope, ids...); err != nil {
			return fmt.Errorf("persist removed records: %w", err)
		}
		if err = c.persistence.SetPending(ctx, owner, scope, entries...); err != nil {
			return fmt.Errorf("persist pending deletions: %w", err)
		}

		for _, r := range removed {
			sc.Evict(r.ID)
			sc.MarkDeleted(r)
		}
		return nil
	})
}

func (c *localDataCoordinator) StoreRemoteRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...models.RecordData) ([]string, error) {
	return workers.Call(ctx, c.queue, func() ([]string, error) {
		ctx := context.WithoutCancel(ctx)
		owner, err := owner(sess, scope)
		if err != nil {
			return nil, err
		}
		sc, err := c.caches.ScopedCache(ctx, owner, scope)
		if err != nil {
			return nil, err
		}
		log := c.logger.With().
			Str("func", "localDataCoordinator.StoreRemoteRecords").
			Stringer("scope", scope).
			Logger()

		var incoming []*models.Record
		for _, d := range records {
			if d.Scope != models.ScopeUnset && d.Scope != scope {
				log.Warn().Str("record_id", d.ID).Stringer("record_scope", d.Scope).Msg("skipping remote record of another scope")
				continue
			}
			d.Scope = scope
			if err = c.validator.Validate(ctx, d); err != nil {
				log.Warn().Err(err).Str("record_id", d.ID).Msg("skipping invalid remote record")
				continue
			}
			if sc.IsPendingChange(d.ID) || sc.IsPendingDeletion(d.ID) {
				log.Debug().Str("record_id", d.ID).Msg("local change pending, remote version ignored")
				continue
			}
			incoming = append(incoming, models.RecordFromData(d))
		}
		if len(incoming) == 0 {
			return nil, nil
		}

		data := make([]models.RecordData, 0, len(incoming))
		for _, r := range incoming {
			data = append(data, r.Data())
		}
		if err = c.persistence.SaveRecords(ctx, owner, scope, data...); err != nil {
			return nil, fmt.Errorf("persist remote records: %w", err)
		}

		ids := make([]string, 0, len(incoming))
		for _, r := range incoming {
			if cached, ok := sc.Record(r.ID); ok {
				cached.Overwrite(r)
			} else {
				sc.Put(r)
			}
			ids = append(ids, r.ID)
		}
		for _, r := range sc.Records() {
			if pid := r.ParentID(); pid != "" && r.Parent() == nil {
				if parent, ok := sc.Record(pid); ok && models.SameZone(r.Zone, parent.Zone) {
					r.ResolveParent(parent)
				}
			}
		}

		log.Debug().Int("records", len(ids)).Msg("remote records stored")
		return ids, nil
	})
}

func (c *localDataCoordinator) EvictRecords(ctx context.Context, sess *models.Session, scope models.Scope, ids ...string) ([]string, error) {
	return workers.Call(ctx, c.queue, func() ([]string, error) {
		ctx := context.WithoutCancel(ctx)
		owner, err := owner(sess, scope)
		if err != nil {
			return nil, err
		}
		sc, err := c.caches.ScopedCache(ctx, owner, scope)
		if err != nil {
			return nil, err
		}

		known := make([]string, 0, len(ids))
		for _, id := range ids {
			_, cached := sc.Record(id)
			if cached || sc.IsPendingChange(id) || sc.IsPendingDeletion(id) {
				known = append(known, id)
			}
		}
		return known, c.evict(ctx, sc, owner, known)
	})
}

func (c *localDataCoordinator) EvictZones(ctx context.Context, sess *models.Session, scope models.Scope, zones ...models.ZoneID) ([]string, error) {
	return workers.Call(ctx, c.queue, func() ([]string, error) {
		ctx := context.WithoutCancel(ctx)
		if !scope.IsZoned() {
			models.Violate(models.RuleUnreachable, "zone eviction requested for %s scope", scope)
		}
		owner, err := owner(sess, scope)
		if err != nil {
			return nil, err
		}
		sc, err := c.caches.ScopedCache(ctx, owner, scope)
		if err != nil {
			return nil, err
		}

		var ids []string
		for _, z := range zones {
			for _, r := range sc.RecordsInZone(z) {
				ids = append(ids, r.ID)
			}
			if zone, ok := sc.Zone(z); ok {
				for id := range zone.RecordsWithUnpushedDeletions {
					ids = append(ids, id)
				}
			}
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)

		if err = c.evict(ctx, sc, owner, ids); err != nil {
			return nil, err
		}
		for _, z := range zones {
			sc.RemoveZone(z)
		}

		c.logger.Info().
			Str("func", "localDataCoordinator.EvictZones").
			Stringer("scope", scope).
			Int("zones", len(zones)).
			Int("records", len(ids)).
			Msg("zones evicted")
		return ids, nil
	})
}

// evict drops ids from persistence first and then from sc, pending entries
// included.
func (c *localDataCoordinator) evict(ctx context.Context, sc *cache.ScopedCache, owner string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.persistence.DeleteRecords(ctx, owner, sc.Scope(), ids...); err != nil {
		return fmt.Errorf("persist evicted records: %w", err)
	}
	if err := c.persistence.ClearPending(ctx, owner, sc.Scope(), ids...); err != nil {
		return fmt.Errorf("persist cleared pending entries: %w", err)
	}
	for _, id := range ids {
		sc.ClearPending(id)
		sc.Evict(id)
	}
	return nil
}

func (c *localDataCoordinator) PendingChanges(ctx context.Context, sess *models.Session, scope models.Scope) (PendingBatch, error) {
	return workers.Call(ctx, c.queue, func() (PendingBatch, error) {
		sc, err := c.scopedCache(context.WithoutCancel(ctx), sess, scope)
		if err != nil {
			return PendingBatch{}, err
		}
		batch := PendingBatch{revisions: make(map[string]uint64)}
		for _, r := range sc.PendingChanges() {
			batch.Save = append(batch.Save, r.Data())
			batch.revisions[r.ID], _ = sc.PendingRevision(r.ID)
		}
		for _, r := range sc.PendingDeletions() {
			batch.Delete = append(batch.Delete, r.ID)
			batch.revisions[r.ID], _ = sc.PendingRevision(r.ID)
		}
		return batch, nil
	})
}

func (c *localDataCoordinator) ConfirmPushed(ctx context.Context, sess *models.Session, scope models.Scope, batch PendingBatch, savedIDs, deletedIDs []string) error {
	return c.queue.Do(ctx, func() error {
		ctx := context.WithoutCancel(ctx)
		owner, err := owner(sess, scope)
		if err != nil {
			return err
		}
		sc, err := c.caches.ScopedCache(ctx, owner, scope)
		if err != nil {
			return err
		}

		unchanged := func(id string) bool {
			pushed, ok := batch.revisions[id]
			if !ok {
				return false
			}
			current, ok := sc.PendingRevision(id)
			return ok && current == pushed
		}

		var cleared, superseded []string
		for _, id := range savedIDs {
			if !sc.IsPendingChange(id) {
				continue
			}
			if unchanged(id) {
				cleared = append(cleared, id)
			} else {
				superseded = append(superseded, id)
			}
		}
		for _, id := range deletedIDs {
			if !sc.IsPendingDeletion(id) {
				continue
			}
			if unchanged(id) {
				cleared = append(cleared, id)
			} else {
				superseded = append(superseded, id)
			}
		}
		if len(superseded) > 0 {
			c.logger.Debug().
				Str("func", "localDataCoordinator.ConfirmPushed").
				Strs("ids", superseded).
				Msg("changed after snapshot, kept pending")
		}
		if len(cleared) == 0 {
			return nil
		}

		if err = c.persistence.ClearPending(ctx, owner, scope, cleared...); err != nil {
			return fmt.Errorf("persist confirmed push: %w", err)
		}
		for _, id := range cleared {
			sc.ClearPending(id)
		}
		return nil
	})
}
