package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/models"
)

const defaultSyncInterval = 5 * time.Minute

// SyncJob calls Synchronize on a ticker. It is idle until Run is called.
type SyncJob struct {
	synchronizer Synchronizer
	session      *models.Session
	interval     time.Duration
	onSummary    func(models.SyncSummary)
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type SyncJobOption func(*SyncJob)

// WithSummaryHandler registers fn to receive the summary of every pass.
func WithSummaryHandler(fn func(models.SyncSummary)) SyncJobOption {
	return func(j *SyncJob) {
		j.onSummary = fn
	}
}

// NewSyncJob creates a SyncJob. If interval is zero or negative it defaults to
// 5 minutes.
func NewSyncJob(synchronizer Synchronizer, sess *models.Session, interval time.Duration, log *logger.Logger, opts ...SyncJobOption) *SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	j := &SyncJob{
		synchronizer: synchronizer,
		session:      sess,
		interval:     interval,
		logger:       log,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run stops any previously running loop, then launches a goroutine that runs
// a sync pass every interval. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *SyncJob) Run(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *SyncJob) runOnce(ctx context.Context) {
	summary := j.synchronizer.Synchronize(ctx, j.session)
	if summary.Result != models.SyncSuccess {
		j.logger.Warn().
			Err(summary.Err()).
			Str("func", "SyncJob.runOnce").
			Stringer("result", summary.Result).
			Msg("periodic sync degraded")
	} else {
		j.logger.Debug().Str("func", "SyncJob.runOnce").Msg("periodic sync finished")
	}
	if j.onSummary != nil {
		j.onSummary(summary)
	}
}

// Stop cancels the loop and blocks until the goroutine has exited. Safe to
// call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
