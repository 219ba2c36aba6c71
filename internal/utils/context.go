// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, identifier
// generation, HTTP response writing, HTTP client initialization, JWT token
// generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SenderCtxKey is the key used to store the authenticated notification
// sender in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SenderCtxKey, "store-eu-1")
var SenderCtxKey = contextKey("sender")

// GetSenderFromContext retrieves the notification sender from the context.
//
// Returns the sender and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing or has an unexpected type
func GetSenderFromContext(ctx context.Context) (string, bool) {
	sender, ok := ctx.Value(SenderCtxKey).(string)
	return sender, ok && sender != ""
}
