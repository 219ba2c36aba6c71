package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/service"
	"github.com/MKhiriev/go-record-sync/internal/utils"
	"github.com/MKhiriev/go-record-sync/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "remote-store"
)

// stubSync is a hand-written SynchronizationCoordinator for handler tests.
type stubSync struct {
	mu sync.Mutex

	summary      models.SyncSummary
	scopeSummary models.ScopedSyncSummary
	notifyErr    error
	state        service.SyncState
	block        chan struct{}
	panicWith    any

	notifications []models.Notification
	passes        int
}

func (s *stubSync) Synchronize(ctx context.Context, _ *models.Session) models.SyncSummary {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes++
	return s.summary
}

func (s *stubSync) HandleNotification(_ context.Context, _ *models.Session, n models.Notification) (models.ScopedSyncSummary, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return s.scopeSummary, s.notifyErr
}

func (s *stubSync) State() service.SyncState { return s.state }

func (s *stubSync) Close() {}

func newTestHandler(t *testing.T, sync *stubSync) *Handler {
	t.Helper()

	cfg := config.ClientNotifications{
		HTTPAddress:  "localhost:0",
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}
	h := NewHandler(sync, models.NewSession(), cfg, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), logger.Nop())
	h.onViolation = func(v *models.InvariantViolation) {
		t.Fatalf("unexpected invariant violation: %v", v)
	}
	return h
}

func bearer(t *testing.T, sender string) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, sender, time.Hour, testSignKey)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

func serve(h http.Handler, method, path, body, auth string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_StoresDependencies(t *testing.T) {
	stub := &stubSync{}
	sess := models.NewSession()
	cfg := config.ClientNotifications{TokenSignKey: "k", TokenIssuer: "i"}
	log := logger.Nop()

	h := NewHandler(stub, sess, cfg, models.AppBuildInfo{Version: "v"}, log)

	require.NotNil(t, h)
	assert.Same(t, sess, h.session)
	assert.Equal(t, "k", h.tokenSignKey)
	assert.Equal(t, "i", h.tokenIssuer)
	assert.Equal(t, "v", h.buildInfo.Version)
	assert.Equal(t, log, h.logger)
	assert.NotNil(t, h.onViolation)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid notification", service.ErrInvalidNotification, http.StatusBadRequest},
		{"wrapped invalid notification", wrap(service.ErrInvalidNotification), http.StatusBadRequest},
		{"not authenticated", service.ErrNotAuthenticated, http.StatusConflict},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"queue closed", wrap(context.Canceled), http.StatusServiceUnavailable},
		{"anything else", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func wrap(err error) error {
	return &wrappedErr{err}
}

type wrappedErr struct{ err error }

func (w *wrappedErr) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrappedErr) Unwrap() error { return w.err }
