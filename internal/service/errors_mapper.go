// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-record-sync/internal/adapter"
	"github.com/MKhiriev/go-record-sync/models"
)

// mapPreflightError translates a remote store error into the preflight
// taxonomy. The original error stays in the chain.
func mapPreflightError(err error) error {
	if err == nil {
		return nil
	}

	var sentinel error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrNotFound):
		sentinel = ErrNoAccount
	case errors.Is(err, adapter.ErrForbidden):
		sentinel = ErrAccountRestricted
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, adapter.ErrConflict),
		errors.Is(err, adapter.ErrDecodingResponse):
		sentinel = ErrIndeterminate
	default:
		sentinel = ErrRemoteUnavailable
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

// accountStatusError maps a non-available account status to its error.
func accountStatusError(status models.AccountStatus) error {
	switch status {
	case models.AccountAvailable:
		return nil
	case models.AccountNoAccount:
		return ErrNoAccount
	case models.AccountRestricted:
		return ErrAccountRestricted
	default:
		return ErrIndeterminate
	}
}
