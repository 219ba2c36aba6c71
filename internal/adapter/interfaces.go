// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer abstraction over the remote
// record store.
//
// The primary abstraction is [RemoteStoreClient], which decouples the sync
// coordinators from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteStoreClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-record-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_mock.go -package=mock

// RemoteStoreClient is the contract of the remote record store. Every call
// is a single request; paging and retries are the caller's concern.
type RemoteStoreClient interface {
	// CheckAvailability reports whether the remote store can be used by the
	// current account.
	CheckAvailability(ctx context.Context) (models.AccountStatus, error)

	// CurrentUserIdentity returns the identifier of the authenticated user.
	CurrentUserIdentity(ctx context.Context) (string, error)

	// FetchRecord returns a single record by identifier.
	FetchRecord(ctx context.Context, id string) (models.RecordData, error)

	// QueryRecords returns one page of public records matching query. An
	// empty cursor requests the first page.
	QueryRecords(ctx context.Context, query models.RecordQuery, cursor string) (models.QueryPage, error)

	// PullDatabaseChanges returns the zones of scope that changed or were
	// deleted since sinceToken. An empty token requests everything.
	PullDatabaseChanges(ctx context.Context, scope models.Scope, sinceToken string) (models.DatabaseChanges, error)

	// PullZoneChanges returns the changed and deleted records of zones.
	PullZoneChanges(ctx context.Context, scope models.Scope, zones []models.ZoneID) (models.ZoneChanges, error)

	// PushChanges saves and deletes records of scope in one request and
	// returns the identifiers the remote store confirmed.
	PushChanges(ctx context.Context, scope models.Scope, toSave []models.RecordData, toDelete []string) (models.PushResult, error)
}
