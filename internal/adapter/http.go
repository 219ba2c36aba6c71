package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-record-sync/internal/config"
	"github.com/MKhiriev/go-record-sync/internal/logger"
	"github.com/MKhiriev/go-record-sync/internal/utils"
	"github.com/MKhiriev/go-record-sync/models"
	"github.com/go-resty/resty/v2"
)

// Reads are retried on transient failures; pushes are not, the sync pass
// keeps the pending sets for the next one instead.
const (
	readRetries   = 2
	readRetryWait = 100 * time.Millisecond
)

type httpRemoteStoreClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

type accountStatusResponse struct {
	Status string `json:"status"`
}

type identityResponse struct {
	UserID string `json:"user_id"`
}

type queryRequest struct {
	Query  models.RecordQuery `json:"query"`
	Cursor string             `json:"cursor,omitempty"`
}

type databaseChangesRequest struct {
	SinceToken string `json:"since_token,omitempty"`
}

type zoneChangesRequest struct {
	Zones []models.ZoneID `json:"zones"`
}

type pushRequest struct {
	Save   []models.RecordData `json:"save"`
	Delete []string            `json:"delete"`
}

// NewHTTPRemoteStoreClient constructs an HTTP/REST implementation of
// [RemoteStoreClient]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL, request timeout and bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteStoreClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteStoreClient, error) {
	client := utils.NewHTTPClient(
		utils.WithRetries(readRetries, readRetryWait),
		utils.WithUserAgent("syncd"),
	)
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	h := &httpRemoteStoreClient{client: client, logger: logger}
	h.SetToken(adapterCfg.Token)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken stores token (whitespace-trimmed) for use in the Authorization
// header of all subsequent requests.
func (h *httpRemoteStoreClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token returns the bearer token currently held by the client.
func (h *httpRemoteStoreClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// CheckAvailability implements [RemoteStoreClient] via
// GET /api/account/status. Unknown status strings are reported as
// indeterminate.
func (h *httpRemoteStoreClient) CheckAvailability(ctx context.Context) (models.AccountStatus, error) {
	var body accountStatusResponse
	if err := h.get(ctx, "/api/account/status", &body); err != nil {
		return models.AccountIndeterminate, fmt.Errorf("account status request: %w", err)
	}

	return models.ParseAccountStatus(body.Status), nil
}

// CurrentUserIdentity implements [RemoteStoreClient] via
// GET /api/account/identity.
func (h *httpRemoteStoreClient) CurrentUserIdentity(ctx context.Context) (string, error) {
	var body identityResponse
	if err := h.get(ctx, "/api/account/identity", &body); err != nil {
		return "", fmt.Errorf("identity request: %w", err)
	}
	if body.UserID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrDecodingResponse)
	}

	return body.UserID, nil
}

// FetchRecord implements [RemoteStoreClient] via GET /api/records/{id}.
func (h *httpRemoteStoreClient) FetchRecord(ctx context.Context, id string) (models.RecordData, error) {
	var record models.RecordData
	if err := h.get(ctx, "/api/records/"+url.PathEscape(id), &record); err != nil {
		return models.RecordData{}, fmt.Errorf("fetch record request: %w", err)
	}

	return record, nil
}

// QueryRecords implements [RemoteStoreClient] via POST /api/public/query.
func (h *httpRemoteStoreClient) QueryRecords(ctx context.Context, query models.RecordQuery, cursor string) (models.QueryPage, error) {
	var page models.QueryPage
	if err := h.post(ctx, "/api/public/query", queryRequest{Query: query, Cursor: cursor}, &page); err != nil {
		return models.QueryPage{}, fmt.Errorf("query records request: %w", err)
	}

	return page, nil
}

// PullDatabaseChanges implements [RemoteStoreClient] via
// POST /api/{scope}/changes.
func (h *httpRemoteStoreClient) PullDatabaseChanges(ctx context.Context, scope models.Scope, sinceToken string) (models.DatabaseChanges, error) {
	var changes models.DatabaseChanges
	if err := h.post(ctx, scopePath(scope, "changes"), databaseChangesRequest{SinceToken: sinceToken}, &changes); err != nil {
		return models.DatabaseChanges{}, fmt.Errorf("database changes request: %w", err)
	}

	return changes, nil
}

// PullZoneChanges implements [RemoteStoreClient] via
// POST /api/{scope}/zones/changes.
func (h *httpRemoteStoreClient) PullZoneChanges(ctx context.Context, scope models.Scope, zones []models.ZoneID) (models.ZoneChanges, error) {
	var changes models.ZoneChanges
	if err := h.post(ctx, scopePath(scope, "zones/changes"), zoneChangesRequest{Zones: zones}, &changes); err != nil {
		return models.ZoneChanges{}, fmt.Errorf("zone changes request: %w", err)
	}

	return changes, nil
}

// PushChanges implements [RemoteStoreClient] via POST /api/{scope}/push.
func (h *httpRemoteStoreClient) PushChanges(ctx context.Context, scope models.Scope, toSave []models.RecordData, toDelete []string) (models.PushResult, error) {
	if toSave == nil {
		toSave = []models.RecordData{}
	}
	if toDelete == nil {
		toDelete = []string{}
	}

	var result models.PushResult
	if err := h.post(ctx, scopePath(scope, "push"), pushRequest{Save: toSave, Delete: toDelete}, &result); err != nil {
		return models.PushResult{}, fmt.Errorf("push request: %w", err)
	}

	h.logger.Debug().
		Str("func", "httpRemoteStoreClient.PushChanges").
		Stringer("scope", scope).
		Int("saved", len(result.SavedIDs)).
		Int("deleted", len(result.DeletedIDs)).
		Msg("push confirmed")

	return result, nil
}

func scopePath(scope models.Scope, suffix string) string {
	return "/api/" + scope.String() + "/" + suffix
}

func (h *httpRemoteStoreClient) get(ctx context.Context, path string, out any) error {
	resp, err := h.authedRequest(ctx).Get(path)
	if err != nil {
		return err
	}

	return decodeResponse(resp, out)
}

func (h *httpRemoteStoreClient) post(ctx context.Context, path string, body, out any) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return err
	}

	return decodeResponse(resp, out)
}

func decodeResponse(resp *resty.Response, out any) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}

	return nil
}

func (h *httpRemoteStoreClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
