// Package workers provides the concurrency primitives of the sync layer: the
// serial FIFO queue every coordinator funnels its work through, the periodic
// sync job, and a Workers aggregate that starts and stops background workers
// together.
package workers

import (
	"context"

	"github.com/MKhiriev/go-record-sync/models"
)

// Worker is a background worker. Run starts it and returns; Stop blocks until
// the worker has fully exited.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    // spawn background processing bound to ctx
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Synchronizer runs one full sync pass.
type Synchronizer interface {
	Synchronize(ctx context.Context, sess *models.Session) models.SyncSummary
}
