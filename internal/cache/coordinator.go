package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/internal/workers"
	"github.com/MKhiriev/go-record-sync/models"
)

// ErrAnonymousOwner is returned when a Private or Shared cache is requested
// for the anonymous identity.
var ErrAnonymousOwner = errors.New("private and shared caches need a user identifier")

// LocalCacheCoordinator owns the user caches of the process. Creation and
// hydration of caches run on its own cache-interaction queue.
type LocalCacheCoordinator struct {
	persistence store.LocalPersistence
	queue       *workers.SerialQueue
	logger      *logger.Logger

	public *ScopedCache
	users  map[string]*UserCache
}

func NewLocalCacheCoordinator(persistence store.LocalPersistence, log *logger.Logger) *LocalCacheCoordinator {
	return &LocalCacheCoordinator{
		persistence: persistence,
		queue:       workers.NewSerialQueue("cache-interaction"),
		logger:      log,
		users:       make(map[string]*UserCache),
	}
}

// UserCache returns the cache of userID, creating and hydrating it on first
// use.
func (c *LocalCacheCoordinator) UserCache(ctx context.Context, userID string) (*UserCache, error) {
	return workers.Call(ctx, c.queue, func() (*UserCache, error) {
		return c.userCache(context.WithoutCancel(ctx), userID)
	})
}

// ScopedCache returns the cache of scope as seen by userID. The Public cache
// is shared by every user, including the anonymous one.
func (c *LocalCacheCoordinator) ScopedCache(ctx context.Context, userID string, scope models.Scope) (*ScopedCache, error) {
	return workers.Call(ctx, c.queue, func() (*ScopedCache, error) {
		ctx := context.WithoutCancel(ctx)
		if scope == models.ScopePublic {
			return c.publicCache(ctx)
		}
		if !scope.IsZoned() {
			return nil, fmt.Errorf("%w: %s", models.ErrUnknownScope, scope)
		}
		if userID == "" {
			return nil, ErrAnonymousOwner
		}
		u, err := c.userCache(ctx, userID)
		if err != nil {
			return nil, err
		}
		sc, _ := u.Cache(scope)
		return sc, nil
	})
}

// Close stops the cache-interaction queue.
func (c *LocalCacheCoordinator) Close() {
	c.queue.Close()
}

func (c *LocalCacheCoordinator) userCache(ctx context.Context, userID string) (*UserCache, error) {
	if u, ok := c.users[userID]; ok {
		return u, nil
	}

	public, err := c.publicCache(ctx)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		u := NewUserCache("", public, nil, nil)
		c.users[userID] = u
		return u, nil
	}

	private, err := c.hydrate(ctx, userID, models.ScopePrivate)
	if err != nil {
		return nil, err
	}
	shared, err := c.hydrate(ctx, userID, models.ScopeShared)
	if err != nil {
		return nil, err
	}

	u := NewUserCache(userID, public, private, shared)
	c.users[userID] = u
	return u, nil
}

func (c *LocalCacheCoordinator) publicCache(ctx context.Context) (*ScopedCache, error) {
	if c.public != nil {
		return c.public, nil
	}
	public, err := c.hydrate(ctx, "", models.ScopePublic)
	if err != nil {
		return nil, err
	}
	c.public = public
	return public, nil
}

func (c *LocalCacheCoordinator) hydrate(ctx context.Context, owner string, scope models.Scope) (*ScopedCache, error) {
	log := c.logger.With().
		Str("func", "LocalCacheCoordinator.hydrate").
		Str("owner", owner).
		Stringer("scope", scope).
		Logger()

	records, err := c.persistence.LoadRecords(ctx, owner, scope)
	if err != nil {
		log.Err(err).Msg("failed to load records")
		return nil, fmt.Errorf("load %s records: %w", scope, err)
	}
	pending, err := c.persistence.LoadPending(ctx, owner, scope)
	if err != nil {
		log.Err(err).Msg("failed to load pending changes")
		return nil, fmt.Errorf("load %s pending changes: %w", scope, err)
	}

	sc := NewScopedCache(owner, scope)
	for _, d := range records {
		if d.Scope != models.ScopeUnset && d.Scope != scope {
			log.Warn().Str("record_id", d.ID).Stringer("record_scope", d.Scope).Msg("skipping record persisted under a foreign scope")
			continue
		}
		r := models.RecordFromData(d)
		r.AssignScope(scope)
		sc.Put(r)
	}
	for _, r := range sc.Records() {
		if pid := r.ParentID(); pid != "" {
			if parent, ok := sc.Record(pid); ok {
				r.ResolveParent(parent)
			}
		}
	}

	for _, e := range pending {
		switch e.Kind {
		case models.PendingSave:
			r, ok := sc.Record(e.RecordID)
			if !ok {
				log.Warn().Str("record_id", e.RecordID).Msg("pending change without a cached record")
				continue
			}
			sc.MarkChanged(r)
		case models.PendingDelete:
			stub := models.NewRecordWithID(e.RecordID, "")
			stub.Zone = e.Zone
			stub.AssignScope(scope)
			sc.MarkDeleted(stub)
		default:
			log.Warn().Str("record_id", e.RecordID).Msg("unknown pending kind")
		}
	}

	log.Debug().
		Int("records", sc.Len()).
		Int("pending", len(pending)).
		Msg("cache hydrated")
	return sc, nil
}
