// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// Scope is the accessibility scope a record lives in. A record's scope is
// assigned exactly once, on its first successful add.
type Scope uint8

const (
	// ScopeUnset marks a record that has never been added to a cache.
	ScopeUnset Scope = iota

	// ScopePublic is the globally shared, unowned scope. It has no zones and
	// no change token.
	ScopePublic

	// ScopePrivate is the per-user scope partitioned into zones.
	ScopePrivate

	// ScopeShared is the per-user collaborative scope, partitioned into zones
	// reached directly or through a share or a parent record.
	ScopeShared
)

// Scopes returns the scopes in the fixed order a sync pass visits them.
func Scopes() []Scope {
	return []Scope{ScopePublic, ScopePrivate, ScopeShared}
}

// IsZoned reports whether records of the scope are partitioned into zones
// with database-level change tracking.
func (s Scope) IsZoned() bool {
	return s == ScopePrivate || s == ScopeShared
}

// IsValid reports whether s is one of the three concrete scopes.
func (s Scope) IsValid() bool {
	return s == ScopePublic || s == ScopePrivate || s == ScopeShared
}

func (s Scope) String() string {
	switch s {
	case ScopePublic:
		return "public"
	case ScopePrivate:
		return "private"
	case ScopeShared:
		return "shared"
	default:
		return "unset"
	}
}

// ParseScope converts the textual form produced by [Scope.String] back into
// a Scope. Matching is case-insensitive.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return ScopePublic, nil
	case "private":
		return ScopePrivate, nil
	case "shared":
		return ScopeShared, nil
	case "", "unset":
		return ScopeUnset, nil
	default:
		return ScopeUnset, fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
