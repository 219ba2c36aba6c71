// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates an httpRemoteStoreClient pointed at the test server.
func newTestClient(t *testing.T, serverURL string) *httpRemoteStoreClient {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second, Token: " secret "}

	c, err := NewHTTPRemoteStoreClient(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return c.(*httpRemoteStoreClient)
}

func writeBody(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPRemoteStoreClient_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteStoreClient(config.ClientAdapter{HTTPAddress: ""}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestToken_TrimmedAndSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeBody(t, w, identityResponse{UserID: "u1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	assert.Equal(t, "secret", c.Token())

	_, err := c.CurrentUserIdentity(context.Background())
	require.NoError(t, err)
}

// ── CheckAvailability ────────────────────────────────────────────────────────

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		status string
		want   models.AccountStatus
	}{
		{"available", models.AccountAvailable},
		{"no_account", models.AccountNoAccount},
		{"restricted", models.AccountRestricted},
		{"something-else", models.AccountIndeterminate},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/account/status", r.URL.Path)
				writeBody(t, w, accountStatusResponse{Status: tt.status})
			}))
			defer srv.Close()

			got, err := newTestClient(t, srv.URL).CheckAvailability(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAvailability_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).CheckAvailability(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, models.AccountIndeterminate, got)
}

// ── CurrentUserIdentity ──────────────────────────────────────────────────────

func TestCurrentUserIdentity_EmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeBody(t, w, identityResponse{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CurrentUserIdentity(context.Background())
	assert.ErrorIs(t, err, ErrDecodingResponse)
}

func TestCurrentUserIdentity_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CurrentUserIdentity(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── FetchRecord ──────────────────────────────────────────────────────────────

func TestFetchRecord_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/user-1", r.URL.Path)
		writeBody(t, w, models.RecordData{ID: "user-1", Type: "User", Scope: models.ScopePublic})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "User", got.Type)
	assert.Equal(t, models.ScopePublic, got.Scope)
}

func TestFetchRecord_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchRecord_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrDecodingResponse)
}

// ── QueryRecords ─────────────────────────────────────────────────────────────

func TestQueryRecords_SendsCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/public/query", r.URL.Path)

		var req queryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Article", req.Query.RecordType)
		assert.Equal(t, "page-2", req.Cursor)

		writeBody(t, w, models.QueryPage{
			Records: []models.RecordData{{ID: "a1", Type: "Article"}},
			Cursor:  "page-3",
		})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL).QueryRecords(context.Background(), models.RecordQuery{RecordType: "Article"}, "page-2")
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "a1", page.Records[0].ID)
	assert.Equal(t, "page-3", page.Cursor)
}

// ── PullDatabaseChanges / PullZoneChanges ───────────────────────────────────

func TestPullDatabaseChanges_Success(t *testing.T) {
	zone := models.ZoneID{Name: "notes", Owner: "u1"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/private/changes", r.URL.Path)

		var req databaseChangesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok-1", req.SinceToken)

		writeBody(t, w, models.DatabaseChanges{ChangedZones: []models.ZoneID{zone}, NewToken: "tok-2"})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PullDatabaseChanges(context.Background(), models.ScopePrivate, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, []models.ZoneID{zone}, got.ChangedZones)
	assert.Empty(t, got.DeletedZones)
	assert.Equal(t, "tok-2", got.NewToken)
}

func TestPullZoneChanges_Success(t *testing.T) {
	zone := models.ZoneID{Name: "trip", Owner: "u2"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shared/zones/changes", r.URL.Path)

		var req zoneChangesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []models.ZoneID{zone}, req.Zones)

		writeBody(t, w, models.ZoneChanges{
			ChangedRecords:   []models.RecordData{{ID: "r1", Zone: &zone}},
			DeletedRecordIDs: []string{"r2"},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PullZoneChanges(context.Background(), models.ScopeShared, []models.ZoneID{zone})
	require.NoError(t, err)
	require.Len(t, got.ChangedRecords, 1)
	assert.Equal(t, &zone, got.ChangedRecords[0].Zone)
	assert.Equal(t, []string{"r2"}, got.DeletedRecordIDs)
}

func TestPullDatabaseChanges_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PullDatabaseChanges(context.Background(), models.ScopePrivate, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Contains(t, err.Error(), "boom")
}

// ── PushChanges ──────────────────────────────────────────────────────────────

func TestPushChanges_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/private/push", r.URL.Path)

		var req pushRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Save, 1) {
			assert.Equal(t, "r1", req.Save[0].ID)
		}
		assert.Equal(t, []string{"r2"}, req.Delete)

		writeBody(t, w, models.PushResult{SavedIDs: []string{"r1"}, DeletedIDs: []string{"r2"}})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PushChanges(context.Background(), models.ScopePrivate,
		[]models.RecordData{{ID: "r1", Type: "Note"}}, []string{"r2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.SavedIDs)
	assert.Equal(t, []string{"r2"}, got.DeletedIDs)
}

func TestPushChanges_NilSlicesSentAsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `[]`, string(raw["save"]))
		assert.JSONEq(t, `[]`, string(raw["delete"]))
		writeBody(t, w, models.PushResult{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PushChanges(context.Background(), models.ScopeShared, nil, nil)
	require.NoError(t, err)
}

func TestPushChanges_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("change tag mismatch"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PushChanges(context.Background(), models.ScopePrivate, nil, []string{"r1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPushChanges_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeBody(t, w, models.PushResult{})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL).PushChanges(ctx, models.ScopePrivate, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// ── mapHTTPError ─────────────────────────────────────────────────────────────

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusGatewayTimeout, ErrGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "r1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "r1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418: I'm a teapot")
}

func TestMapHTTPError_JSONMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"change tag mismatch"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "r1")
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "conflict: change tag mismatch")
}

func TestFetchRecord_RetriesTransientFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeBody(t, w, models.RecordData{ID: "r1", Type: "Note"})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).FetchRecord(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, 2, calls)
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
