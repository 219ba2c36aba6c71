// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/validators"
	"github.com/MKhiriev/go-record-sync/internal/workers"
	"github.com/MKhiriev/go-record-sync/models"
)

// SyncPhase is a state of the sync pass state machine.
type SyncPhase uint8

const (
	PhaseIdle SyncPhase = iota
	PhasePreflighting
	PhasePullPush
	PhaseAggregating
	PhaseDone
)

func (p SyncPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreflighting:
		return "preflighting"
	case PhasePullPush:
		return "pull-push"
	case PhaseAggregating:
		return "aggregating"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// SyncState is the phase of a pass and, during PhasePullPush, the scope being
// synchronized.
type SyncState struct {
	Phase SyncPhase
	Scope models.Scope
}

func (s SyncState) String() string {
	if s.Phase == PhasePullPush {
		return fmt.Sprintf("%s(%s)", s.Phase, s.Scope)
	}
	return s.Phase.String()
}

type SyncOption func(*synchronizationCoordinator)

// WithStateObserver registers fn to receive every state transition. fn runs
// on the sync queue.
func WithStateObserver(fn func(SyncState)) SyncOption {
	return func(c *synchronizationCoordinator) {
		c.observer = fn
	}
}

type synchronizationCoordinator struct {
	remote    RemoteDataCoordinator
	queue     *workers.SerialQueue
	validator validators.Validator
	logger    *logger.Logger

	mu       sync.RWMutex
	state    SyncState
	observer func(SyncState)
}

func NewSynchronizationCoordinator(remote RemoteDataCoordinator, log *logger.Logger, opts ...SyncOption) SynchronizationCoordinator {
	c := &synchronizationCoordinator{
		remote:    remote,
		queue:     workers.NewSerialQueue("sync"),
		validator: validators.NewRecordDataValidator(),
		logger:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ workers.Synchronizer = (*synchronizationCoordinator)(nil)

func (c *synchronizationCoordinator) State() SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *synchronizationCoordinator) Close() {
	c.queue.Close()
}

func (c *synchronizationCoordinator) transition(next SyncState) {
	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	c.logger.Debug().
		Str("func", "synchronizationCoordinator.transition").
		Stringer("from", prev).
		Stringer("to", next).
		Msg("sync state changed")
	if c.observer != nil {
		c.observer(next)
	}
}

func (c *synchronizationCoordinator) Synchronize(ctx context.Context, sess *models.Session) models.SyncSummary {
	summary, err := workers.Call(ctx, c.queue, func() (models.SyncSummary, error) {
		return c.synchronize(context.WithoutCancel(ctx), sess), nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "synchronizationCoordinator.Synchronize").Msg("gave up waiting for sync pass")
		return models.SyncSummary{Result: models.SyncTotalFailure, Errors: []error{err}}
	}
	return summary
}

func (c *synchronizationCoordinator) synchronize(ctx context.Context, sess *models.Session) models.SyncSummary {
	log := c.logger.With().Str("func", "synchronizationCoordinator.synchronize").Logger()

	c.transition(SyncState{Phase: PhasePreflighting})
	if err := c.remote.Preflight(ctx, sess); err != nil {
		log.Err(err).Bool("transient", isTransient(err)).Msg("preflight failed")
		c.transition(SyncState{Phase: PhaseDone})
		return models.PreflightFailed(err)
	}

	scopes := make([]models.ScopedSyncSummary, 0, len(models.Scopes()))
	for _, scope := range models.Scopes() {
		c.transition(SyncState{Phase: PhasePullPush, Scope: scope})
		scopes = append(scopes, c.syncScope(ctx, sess, scope))
	}

	c.transition(SyncState{Phase: PhaseAggregating})
	summary := models.NewSyncSummary(scopes)
	c.transition(SyncState{Phase: PhaseDone})

	log.Info().
		Stringer("result", summary.Result).
		Int("errors", len(summary.Errors)).
		Msg("sync pass finished")
	return summary
}

// syncScope pulls scope and then pushes it.
func (c *synchronizationCoordinator) syncScope(ctx context.Context, sess *models.Session, scope models.Scope) models.ScopedSyncSummary {
	if !scope.IsZoned() {
		pull := c.remote.PullPublic(ctx, sess)
		return models.NewScopedSyncSummary(scope, pull, c.remote.Push(ctx, sess, scope))
	}
	pull := c.remote.PullZoned(ctx, sess, scope)
	return models.NewZonedScopedSyncSummary(scope, pull, c.remote.Push(ctx, sess, scope))
}

func (c *synchronizationCoordinator) HandleNotification(ctx context.Context, sess *models.Session, n models.Notification) (models.ScopedSyncSummary, error) {
	if err := c.validator.Validate(ctx, n); err != nil {
		return models.ScopedSyncSummary{}, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}

	return workers.Call(ctx, c.queue, func() (models.ScopedSyncSummary, error) {
		ctx := context.WithoutCancel(ctx)
		c.logger.Info().
			Str("func", "synchronizationCoordinator.HandleNotification").
			Stringer("scope", n.Scope).
			Str("subscription_id", n.SubscriptionID).
			Msg("pulling notified scope")

		if !n.Scope.IsZoned() {
			return models.NewScopedSyncSummary(n.Scope, c.remote.PullPublic(ctx, sess), models.DirectionalSyncSummary{}), nil
		}
		if _, ok := sess.CurrentUser(); !ok {
			return models.ScopedSyncSummary{}, ErrNotAuthenticated
		}
		return models.NewZonedScopedSyncSummary(n.Scope, c.remote.PullZoned(ctx, sess, n.Scope), models.DirectionalSyncSummary{}), nil
	})
}
