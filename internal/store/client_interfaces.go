package store

import (
	"context"

	"github.com/MKhiriev/go-record-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalPersistence is the durable backing of the record caches.
//
// Records and pending-change entries are partitioned by owner and scope. The
// owner of Public data is the anonymous identity "". A record belongs to at
// most one pending set of its partition at a time; writing an entry replaces
// the previous one for the same record.
type LocalPersistence interface {
	LoadRecords(ctx context.Context, owner string, scope models.Scope) ([]models.RecordData, error)
	SaveRecords(ctx context.Context, owner string, scope models.Scope, records ...models.RecordData) error
	DeleteRecords(ctx context.Context, owner string, scope models.Scope, ids ...string) error

	LoadPending(ctx context.Context, owner string, scope models.Scope) ([]models.PendingEntry, error)
	SetPending(ctx context.Context, owner string, scope models.Scope, entries ...models.PendingEntry) error
	ClearPending(ctx context.Context, owner string, scope models.Scope, ids ...string) error

	// GetMetadata reports false when key was never set.
	GetMetadata(ctx context.Context, key string) (string, bool, error)
	SetMetadata(ctx context.Context, key, value string) error

	Close() error
}
