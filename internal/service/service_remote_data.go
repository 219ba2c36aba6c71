package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-record-sync/internal/adapter"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/store"
	"github.com/MKhiriev/go-record-sync/models"
)

type remoteDataCoordinator struct {
	remote      adapter.RemoteStoreClient
	local       LocalDataCoordinator
	persistence store.LocalPersistence
	descriptors []models.RecordQuery

	logger *logger.Logger
}

// NewRemoteDataCoordinator returns a [RemoteDataCoordinator]. descriptors are
// the public queries pulled on every pass; change tokens are kept in the
// metadata of persistence.
func NewRemoteDataCoordinator(remote adapter.RemoteStoreClient, local LocalDataCoordinator, persistence store.LocalPersistence, descriptors []models.RecordQuery, log *logger.Logger) RemoteDataCoordinator {
	return &remoteDataCoordinator{
		remote:      remote,
		local:       local,
		persistence: persistence,
		descriptors: descriptors,
		logger:      log,
	}
}

// changeTokenKey is the metadata key of the database change token of scope
// for user.
func changeTokenKey(user string, scope models.Scope) string {
	return fmt.Sprintf("changetoken/%s/%s", user, scope)
}

func (c *remoteDataCoordinator) Preflight(ctx context.Context, sess *models.Session) error {
	log := c.logger.With().Str("func", "remoteDataCoordinator.Preflight").Logger()

	status, err := c.remote.CheckAvailability(ctx)
	if err != nil {
		log.Err(err).Msg("availability check failed")
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	if err = accountStatusError(status); err != nil {
		log.Warn().Stringer("status", status).Msg("remote store not available for this account")
		return err
	}

	userID, err := c.remote.CurrentUserIdentity(ctx)
	if err != nil {
		log.Err(err).Msg("failed to get current user identity")
		return mapPreflightError(err)
	}
	if userID == "" {
		return fmt.Errorf("%w: empty user identity", ErrNoAccount)
	}

	user, err := c.remote.FetchRecord(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to fetch user record")
		return mapPreflightError(err)
	}
	// user records live in Public whatever the remote store tags them with
	user.Scope = models.ScopePublic
	stored, err := c.local.StoreRemoteRecords(ctx, sess, models.ScopePublic, user)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to store user record")
		return fmt.Errorf("store user record: %w", err)
	}
	if len(stored) == 0 {
		cached, err := c.local.RetrieveRecord(ctx, sess, userID, models.ScopePublic, 0)
		if err != nil {
			return fmt.Errorf("look up user record: %w", err)
		}
		if cached == nil {
			log.Warn().Str("user_id", userID).Msg("user record rejected")
			return fmt.Errorf("%w: user record %s was rejected", ErrIndeterminate, userID)
		}
	}

	sess.SetCurrentUser(userID)
	log.Info().Str("user_id", userID).Msg("preflight passed")
	return nil
}

func (c *remoteDataCoordinator) PullPublic(ctx context.Context, sess *models.Session) models.DirectionalSyncSummary {
	summaries := make([]models.DirectionalSyncSummary, 0, len(c.descriptors))
	for _, q := range c.descriptors {
		summaries = append(summaries, c.pullQuery(ctx, sess, q))
	}
	return models.MergeDirectional(summaries...)
}

// pullQuery pages through q until the remote store stops returning a cursor.
func (c *remoteDataCoordinator) pullQuery(ctx context.Context, sess *models.Session, q models.RecordQuery) models.DirectionalSyncSummary {
	log := c.logger.With().
		Str("func", "remoteDataCoordinator.pullQuery").
		Str("record_type", q.RecordType).
		Logger()

	var (
		summary models.DirectionalSyncSummary
		cursor  string
		seen    = make(map[string]struct{})
	)
	for page := 0; ; page++ {
		p, err := c.remote.QueryRecords(ctx, q, cursor)
		if err == nil {
			var ids []string
			ids, err = c.local.StoreRemoteRecords(ctx, sess, models.ScopePublic, p.Records...)
			summary.ChangedRecordIDs = append(summary.ChangedRecordIDs, ids...)
		}
		if err != nil {
			log.Err(err).Int("page", page).Msg("public query failed")
			if page == 0 {
				return models.FailedDirectional(err)
			}
			summary.Result = models.SyncPartialFailure
			summary.Errors = append(summary.Errors, fmt.Errorf("%w: %s page %d: %w", ErrPartialPullFailure, q.RecordType, page, err))
			return summary
		}

		if p.Cursor == "" {
			break
		}
		if _, ok := seen[p.Cursor]; ok {
			log.Warn().Str("cursor", p.Cursor).Msg("remote store repeated a cursor, stopping")
			break
		}
		seen[p.Cursor] = struct{}{}
		cursor = p.Cursor
	}

	log.Debug().Int("records", len(summary.ChangedRecordIDs)).Msg("public query pulled")
	return summary
}

func (c *remoteDataCoordinator) PullZoned(ctx context.Context, sess *models.Session, scope models.Scope) models.ZoneBasedDirectionalSyncSummary {
	log := c.logger.With().
		Str("func", "remoteDataCoordinator.PullZoned").
		Stringer("scope", scope).
		Logger()

	user, ok := sess.CurrentUser()
	if !ok {
		return models.NewZoneBasedSummary(models.FailedDirectional(ErrNotAuthenticated),
			models.DirectionalSyncSummary{Result: models.SyncTotalFailure}, nil, nil)
	}
	tokenKey := changeTokenKey(user, scope)

	token, _, err := c.persistence.GetMetadata(ctx, tokenKey)
	if err != nil {
		log.Err(err).Msg("failed to read change token")
		return models.NewZoneBasedSummary(models.FailedDirectional(fmt.Errorf("read change token: %w", err)),
			models.DirectionalSyncSummary{Result: models.SyncTotalFailure}, nil, nil)
	}

	changes, err := c.remote.PullDatabaseChanges(ctx, scope, token)
	if err != nil {
		log.Err(err).Msg("failed to pull database changes")
		return models.NewZoneBasedSummary(models.FailedDirectional(err),
			models.DirectionalSyncSummary{Result: models.SyncTotalFailure}, nil, nil)
	}

	deletions := c.evictDeletedZones(ctx, sess, scope, changes.DeletedZones)
	zoneChanges := c.pullZoneChanges(ctx, sess, scope, tokenKey, changes)

	summary := models.NewZoneBasedSummary(deletions, zoneChanges, changes.DeletedZones, changes.ChangedZones)
	log.Debug().
		Stringer("result", summary.Result).
		Int("deleted_zones", len(changes.DeletedZones)).
		Int("changed_zones", len(changes.ChangedZones)).
		Msg("zoned pull finished")
	return summary
}

// evictDeletedZones is best-effort: each zone is evicted on its own and a
// failure only downgrades the zone-deletion result.
func (c *remoteDataCoordinator) evictDeletedZones(ctx context.Context, sess *models.Session, scope models.Scope, zones []models.ZoneID) models.DirectionalSyncSummary {
	var (
		summary models.DirectionalSyncSummary
		failed  int
	)
	for _, z := range zones {
		ids, err := c.local.EvictZones(ctx, sess, scope, z)
		if err != nil {
			c.logger.Err(err).
				Str("func", "remoteDataCoordinator.evictDeletedZones").
				Stringer("zone", z).
				Msg("failed to evict deleted zone")
			summary.Errors = append(summary.Errors, fmt.Errorf("evict zone %s: %w", z, err))
			failed++
			continue
		}
		summary.DeletedRecordIDs = append(summary.DeletedRecordIDs, ids...)
	}

	switch {
	case failed == 0:
		summary.Result = models.SyncSuccess
	case failed == len(zones):
		summary.Result = models.SyncTotalFailure
	default:
		summary.Result = models.SyncPartialFailure
	}
	return summary
}

// pullZoneChanges fetches the record changes of the changed zones, commits
// the new token and applies the changes locally.
func (c *remoteDataCoordinator) pullZoneChanges(ctx context.Context, sess *models.Session, scope models.Scope, tokenKey string, changes models.DatabaseChanges) models.DirectionalSyncSummary {
	log := c.logger.With().
		Str("func", "remoteDataCoordinator.pullZoneChanges").
		Stringer("scope", scope).
		Logger()

	var zc models.ZoneChanges
	if len(changes.ChangedZones) > 0 {
		var err error
		zc, err = c.remote.PullZoneChanges(ctx, scope, changes.ChangedZones)
		if err != nil {
			log.Err(err).Msg("failed to pull zone changes")
			return models.FailedDirectional(err)
		}
	}

	var errs []error
	if changes.NewToken != "" {
		if err := c.persistence.SetMetadata(ctx, tokenKey, changes.NewToken); err != nil {
			log.Err(err).Msg("failed to commit change token")
			errs = append(errs, fmt.Errorf("commit change token: %w", err))
		}
	}

	var summary models.DirectionalSyncSummary
	deleted, err := c.local.EvictRecords(ctx, sess, scope, zc.DeletedRecordIDs...)
	if err != nil {
		log.Err(err).Msg("failed to evict deleted records")
		errs = append(errs, fmt.Errorf("evict deleted records: %w", err))
	}
	summary.DeletedRecordIDs = deleted

	stored, err := c.local.StoreRemoteRecords(ctx, sess, scope, zc.ChangedRecords...)
	if err != nil {
		log.Err(err).Msg("failed to store changed records")
		errs = append(errs, fmt.Errorf("store changed records: %w", err))
	}
	summary.ChangedRecordIDs = stored

	summary.Errors = errs
	if len(errs) > 0 {
		summary.Result = models.SyncPartialFailure
	}
	return summary
}

func (c *remoteDataCoordinator) Push(ctx context.Context, sess *models.Session, scope models.Scope) models.DirectionalSyncSummary {
	log := c.logger.With().
		Str("func", "remoteDataCoordinator.Push").
		Stringer("scope", scope).
		Logger()

	batch, err := c.local.PendingChanges(ctx, sess, scope)
	if err != nil {
		log.Err(err).Msg("failed to collect pending changes")
		return models.FailedDirectional(err)
	}
	if batch.Empty() {
		return models.DirectionalSyncSummary{Result: models.SyncSuccess}
	}

	saveIDs := batch.SaveIDs()
	res, err := c.remote.PushChanges(ctx, scope, batch.Save, batch.Delete)
	if err != nil {
		log.Err(err).Int("save", len(batch.Save)).Int("delete", len(batch.Delete)).Msg("push request failed")
		return models.FailedDirectional(err)
	}

	saved := intersect(saveIDs, res.SavedIDs)
	deleted := intersect(batch.Delete, res.DeletedIDs)
	if err = c.local.ConfirmPushed(ctx, sess, scope, batch, saved, deleted); err != nil {
		log.Err(err).Msg("failed to clear confirmed pending entries")
		return models.DirectionalSyncSummary{
			Result:           models.SyncPartialFailure,
			ChangedRecordIDs: saved,
			DeletedRecordIDs: deleted,
			Errors:           []error{fmt.Errorf("confirm pushed: %w", err)},
		}
	}

	summary := models.DirectionalSyncSummary{
		Result:           models.SyncSuccess,
		ChangedRecordIDs: saved,
		DeletedRecordIDs: deleted,
	}
	missing := len(saveIDs) + len(batch.Delete) - len(saved) - len(deleted)
	if missing > 0 {
		summary.Result = models.SyncPartialFailure
		if len(saved)+len(deleted) == 0 {
			summary.Result = models.SyncTotalFailure
		}
		summary.Errors = []error{fmt.Errorf("%w: %d of %d changes not confirmed", ErrPartialPushFailure, missing, len(saveIDs)+len(batch.Delete))}
		log.Warn().Int("missing", missing).Msg("remote store did not confirm every change")
	}
	return summary
}

// intersect returns the elements of want that appear in got, in want order.
func intersect(want, got []string) []string {
	if len(want) == 0 || len(got) == 0 {
		return nil
	}
	var out []string
	for _, id := range want {
		if slices.Contains(got, id) {
			out = append(out, id)
		}
	}
	return out
}

// isTransient reports whether err is worth retrying on the next pass.
func isTransient(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, adapter.ErrServiceUnavailable) ||
		errors.Is(err, adapter.ErrBadGateway) || errors.Is(err, adapter.ErrGatewayTimeout) ||
		errors.Is(err, adapter.ErrTooManyRequests) || errors.Is(err, context.DeadlineExceeded)
}
