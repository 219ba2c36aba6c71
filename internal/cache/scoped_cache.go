// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"maps"
	"slices"
	"strings"

	"github.com/MKhiriev/go-record-sync/models"
)

// ScopedCache is the in-memory index of one scope for one owner. Public
// caches are owned by the anonymous identity "".
type ScopedCache struct {
	owner string
	scope models.Scope

	cachedRecords                map[string]*models.Record
	recordsWithUnpushedChanges   map[string]*models.Record
	recordsWithUnpushedDeletions map[string]*models.Record

	// revisions counts pending transitions per identifier. A pushed snapshot
	// is confirmed only while its revision is still current.
	revision  uint64
	revisions map[string]uint64

	zones map[models.ZoneID]*models.Zone
}

func NewScopedCache(owner string, scope models.Scope) *ScopedCache {
	c := &ScopedCache{
		owner:                        owner,
		scope:                        scope,
		cachedRecords:                make(map[string]*models.Record),
		recordsWithUnpushedChanges:   make(map[string]*models.Record),
		recordsWithUnpushedDeletions: make(map[string]*models.Record),
		revisions:                    make(map[string]uint64),
	}
	if scope.IsZoned() {
		c.zones = make(map[models.ZoneID]*models.Zone)
	}
	return c
}

func (c *ScopedCache) Owner() string       { return c.owner }
func (c *ScopedCache) Scope() models.Scope { return c.scope }
func (c *ScopedCache) Len() int            { return len(c.cachedRecords) }

// Record returns the cached record with id.
func (c *ScopedCache) Record(id string) (*models.Record, bool) {
	r, ok := c.cachedRecords[id]
	return r, ok
}

// Records returns every cached record ordered by identifier.
func (c *ScopedCache) Records() []*models.Record {
	return sortedRecords(c.cachedRecords)
}

// Put inserts r into the cache, replacing any record with the same
// identifier. It does not touch the pending sets.
func (c *ScopedCache) Put(r *models.Record) {
	c.cachedRecords[r.ID] = r
	if z := c.zoneOf(r); z != nil {
		c.EnsureZone(*z)
	}
}

// Evict removes the record with id from the cache and returns it. Pending
// sets are left as they are.
func (c *ScopedCache) Evict(id string) (*models.Record, bool) {
	r, ok := c.cachedRecords[id]
	if ok {
		delete(c.cachedRecords, id)
	}
	return r, ok
}

// MarkChanged puts r into the awaiting-push set and takes it out of the
// awaiting-delete set.
func (c *ScopedCache) MarkChanged(r *models.Record) {
	c.dropDeletion(r.ID)
	c.bump(r.ID)
	c.recordsWithUnpushedChanges[r.ID] = r
	if z := c.zoneOf(r); z != nil {
		c.EnsureZone(*z).RecordsWithUnpushedChanges[r.ID] = r
	}
}

// MarkDeleted puts r into the awaiting-delete set and takes it out of the
// awaiting-push set.
func (c *ScopedCache) MarkDeleted(r *models.Record) {
	c.dropChange(r.ID)
	c.bump(r.ID)
	c.recordsWithUnpushedDeletions[r.ID] = r
	if z := c.zoneOf(r); z != nil {
		c.EnsureZone(*z).RecordsWithUnpushedDeletions[r.ID] = r
	}
}

// ClearPending removes id from both pending sets.
func (c *ScopedCache) ClearPending(id string) {
	c.dropChange(id)
	c.dropDeletion(id)
	delete(c.revisions, id)
}

// PendingRevision returns the revision of the pending entry of id. Every
// MarkChanged or MarkDeleted of id yields a new, larger revision.
func (c *ScopedCache) PendingRevision(id string) (uint64, bool) {
	rev, ok := c.revisions[id]
	return rev, ok
}

func (c *ScopedCache) bump(id string) {
	c.revision++
	c.revisions[id] = c.revision
}

func (c *ScopedCache) dropChange(id string) {
	r, ok := c.recordsWithUnpushedChanges[id]
	if !ok {
		return
	}
	delete(c.recordsWithUnpushedChanges, id)
	if z := c.zoneOf(r); z != nil {
		if zone, ok := c.zones[*z]; ok {
			delete(zone.RecordsWithUnpushedChanges, id)
		}
	}
}

func (c *ScopedCache) dropDeletion(id string) {
	r, ok := c.recordsWithUnpushedDeletions[id]
	if !ok {
		return
	}
	delete(c.recordsWithUnpushedDeletions, id)
	if z := c.zoneOf(r); z != nil {
		if zone, ok := c.zones[*z]; ok {
			delete(zone.RecordsWithUnpushedDeletions, id)
		}
	}
}

// IsPendingChange reports whether id awaits a save push.
func (c *ScopedCache) IsPendingChange(id string) bool {
	_, ok := c.recordsWithUnpushedChanges[id]
	return ok
}

// IsPendingDeletion reports whether id awaits a delete push.
func (c *ScopedCache) IsPendingDeletion(id string) bool {
	_, ok := c.recordsWithUnpushedDeletions[id]
	return ok
}

// PendingChanges returns the awaiting-push set ordered by identifier.
func (c *ScopedCache) PendingChanges() []*models.Record {
	return sortedRecords(c.recordsWithUnpushedChanges)
}

// PendingDeletions returns the awaiting-delete set ordered by identifier.
func (c *ScopedCache) PendingDeletions() []*models.Record {
	return sortedRecords(c.recordsWithUnpushedDeletions)
}

// Zone returns the zone with id. Public caches have no zones.
func (c *ScopedCache) Zone(id models.ZoneID) (*models.Zone, bool) {
	z, ok := c.zones[id]
	return z, ok
}

// EnsureZone returns the zone with id, creating it when missing. It panics on
// a Public cache.
func (c *ScopedCache) EnsureZone(id models.ZoneID) *models.Zone {
	if !c.scope.IsZoned() {
		models.Violate(models.RuleStructure, "%s scope has no zones (zone %s)", c.scope, id)
	}
	z, ok := c.zones[id]
	if !ok {
		z = models.NewZone(id)
		c.zones[id] = z
	}
	return z
}

// Zones returns the known zone identifiers ordered by owner and name.
func (c *ScopedCache) Zones() []models.ZoneID {
	ids := slices.Collect(maps.Keys(c.zones))
	slices.SortFunc(ids, func(a, b models.ZoneID) int {
		if n := strings.Compare(a.Owner, b.Owner); n != 0 {
			return n
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ids
}

// RemoveZone forgets the zone with id. Records are not touched.
func (c *ScopedCache) RemoveZone(id models.ZoneID) {
	delete(c.zones, id)
}

// RecordsInZone returns the cached records of zone id ordered by identifier.
func (c *ScopedCache) RecordsInZone(id models.ZoneID) []*models.Record {
	out := make([]*models.Record, 0)
	for _, r := range c.Records() {
		if r.Zone != nil && *r.Zone == id {
			out = append(out, r)
		}
	}
	return out
}

func (c *ScopedCache) zoneOf(r *models.Record) *models.ZoneID {
	if !c.scope.IsZoned() {
		return nil
	}
	return r.Zone
}

func sortedRecords(m map[string]*models.Record) []*models.Record {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]*models.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
