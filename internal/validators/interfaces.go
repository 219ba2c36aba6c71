// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks data that enters the sync layer from outside the
// process: records delivered by the remote store and change notifications.
//
// A Validator accepts optional field names that restrict validation to a
// subset of its checks.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
