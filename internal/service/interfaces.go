package service

import (
	"context"

	"github.com/MKhiriev/go-record-sync/models"
)

// Query selects cached records. An empty Type matches every type and a nil
// Predicate matches every record. A Predicate error aborts the query and is
// returned as is.
type Query struct {
	Type      string
	Predicate func(r *models.Record) (bool, error)
}

// PendingBatch is a snapshot of the pending sets of one scope. Save holds
// serialized copies taken on the local-records queue, so edits made while a
// push is in flight neither leak into it nor get confirmed by it.
type PendingBatch struct {
	Save   []models.RecordData
	Delete []string

	revisions map[string]uint64
}

// Empty reports whether there is nothing to push.
func (b PendingBatch) Empty() bool {
	return len(b.Save) == 0 && len(b.Delete) == 0
}

// SaveIDs returns the identifiers of Save in order.
func (b PendingBatch) SaveIDs() []string {
	ids := make([]string, 0, len(b.Save))
	for _, d := range b.Save {
		ids = append(ids, d.ID)
	}
	return ids
}

// LocalDataCoordinator is the mutation and query façade over the record
// caches. Every call runs as one unit on the local-records queue and blocks
// until that unit has finished; ctx only bounds the wait.
//
// Private and Shared operations need a current user in sess and fail with
// [ErrNotAuthenticated] otherwise. Invariant violations (scope reassignment,
// zone mismatch, structural rules) panic with *models.InvariantViolation.
type LocalDataCoordinator interface {
	// RetrieveRecord returns the cached record with id, or nil when it is not
	// cached. Relationships are resolved up to depth hops; a negative depth
	// resolves the whole reachable graph.
	RetrieveRecord(ctx context.Context, sess *models.Session, id string, scope models.Scope, depth int) (*models.Record, error)
	// RetrieveRecords returns the cached records of scope matching q, ordered
	// by identifier.
	RetrieveRecords(ctx context.Context, sess *models.Session, q Query, scope models.Scope, depth int) ([]*models.Record, error)

	// AddRecord is AddRecords with a single record.
	AddRecord(ctx context.Context, sess *models.Session, scope models.Scope, record *models.Record) error
	// AddRecords stores records and every record reachable from them that is
	// not cached yet, and marks them as awaiting push.
	AddRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...*models.Record) error
	// RemoveRecord is RemoveRecords with a single record.
	RemoveRecord(ctx context.Context, sess *models.Session, scope models.Scope, record *models.Record) error
	// RemoveRecords evicts records and marks them as awaiting delete-push.
	// Removing a record twice is a no-op.
	RemoveRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...*models.Record) error

	// StoreRemoteRecords stores records pulled from the remote store without
	// pending bookkeeping and returns the identifiers that were stored.
	StoreRemoteRecords(ctx context.Context, sess *models.Session, scope models.Scope, records ...models.RecordData) ([]string, error)
	// EvictRecords drops records deleted remotely, together with any pending
	// entry, and returns the identifiers that were known locally.
	EvictRecords(ctx context.Context, sess *models.Session, scope models.Scope, ids ...string) ([]string, error)
	// EvictZones drops every record of zones and the zones themselves.
	EvictZones(ctx context.Context, sess *models.Session, scope models.Scope, zones ...models.ZoneID) ([]string, error)

	// PendingChanges snapshots the awaiting-push records and the identifiers
	// awaiting delete-push of scope.
	PendingChanges(ctx context.Context, sess *models.Session, scope models.Scope) (PendingBatch, error)
	// ConfirmPushed clears the pending entries of batch the remote store
	// confirmed. An entry changed locally after the snapshot stays pending.
	ConfirmPushed(ctx context.Context, sess *models.Session, scope models.Scope, batch PendingBatch, savedIDs, deletedIDs []string) error

	// AddRecordsAsync submits AddRecords and returns immediately. done runs on
	// the local-records queue right after the unit and must not call back into
	// the coordinator synchronously.
	AddRecordsAsync(sess *models.Session, scope models.Scope, records []*models.Record, done func(error)) error
	// RetrieveRecordAsync submits RetrieveRecord and returns immediately. The
	// same restrictions on done apply.
	RetrieveRecordAsync(sess *models.Session, id string, scope models.Scope, depth int, done func(*models.Record, error)) error

	Close()
}

// RemoteDataCoordinator reconciles the local caches with the remote store.
// Its methods are steps of a sync pass and are not queued themselves.
type RemoteDataCoordinator interface {
	// Preflight checks availability and identity and, on success, records the
	// current user in sess.
	Preflight(ctx context.Context, sess *models.Session) error
	// PullPublic runs every configured public query.
	PullPublic(ctx context.Context, sess *models.Session) models.DirectionalSyncSummary
	// PullZoned pulls the changes of a Private or Shared scope since the
	// persisted change token.
	PullZoned(ctx context.Context, sess *models.Session, scope models.Scope) models.ZoneBasedDirectionalSyncSummary
	// Push sends the pending saves and deletions of scope in one request.
	Push(ctx context.Context, sess *models.Session, scope models.Scope) models.DirectionalSyncSummary
}

// SynchronizationCoordinator runs sync passes one at a time on the sync
// queue.
type SynchronizationCoordinator interface {
	// Synchronize runs preflight, then pull and push for every scope in the
	// order Public, Private, Shared.
	Synchronize(ctx context.Context, sess *models.Session) models.SyncSummary
	// HandleNotification runs the pull path of the notified scope only.
	HandleNotification(ctx context.Context, sess *models.Session, n models.Notification) (models.ScopedSyncSummary, error)
	// State returns the phase of the pass in progress, or of the last one.
	State() SyncState

	Close()
}
