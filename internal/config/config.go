// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of syncd. It is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds settings of the local sync engine itself.
	App App `envPrefix:"APP_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the settings of the remote record store client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Notifications holds the settings of the change-notification listener.
	Notifications Notifications `envPrefix:"NOTIFICATIONS_"`

	// Pull holds the public-scope pull settings.
	Pull Pull `envPrefix:"PULL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DefaultZoneName is the zone assigned to Private records that are added
	// without a zone.
	// Env: APP_DEFAULT_ZONE
	DefaultZoneName string `env:"DEFAULT_ZONE"`

	// DeviceName identifies this installation in logs and trace IDs.
	// Env: APP_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`

	// LogFile is the path of the rotated log file. Empty logs to stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration of the local persistence.
type Storage struct {
	// DB holds the persistence backend settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the persistence backend selector.
type DB struct {
	// DSN selects the backend: "memory", a path ending in ".json", a SQLite
	// database path, or a "postgres://" URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the remote record store client settings.
type Adapter struct {
	// HTTPAddress is the base address of the remote record store API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token presented to the remote store.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Notifications holds the settings of the inbound notification listener.
type Notifications struct {
	// HTTPAddress is the listen address in "host:port" format. Empty disables
	// the listener.
	// Env: NOTIFICATIONS_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// TokenSignKey verifies the JWT presented by the notification sender.
	// Env: NOTIFICATIONS_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of the sender's JWT.
	// Env: NOTIFICATIONS_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Pull holds public pull settings.
type Pull struct {
	// DescriptorsPath is the YAML file listing the public record queries.
	// Env: PULL_DESCRIPTORS
	DescriptorsPath string `env:"DESCRIPTORS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
