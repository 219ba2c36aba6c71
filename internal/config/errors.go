package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote adapter settings
	// (for example, missing HTTP address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty storage DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidNotificationConfigs indicates an enabled notification
	// listener without a token signing key.
	ErrInvalidNotificationConfigs = errors.New("invalid notification configuration")
	// ErrNegativeDuration is returned when a configured duration is negative.
	ErrNegativeDuration = errors.New("duration must not be negative")

	// ErrReadingDescriptors is returned when the pull descriptor file
	// cannot be read or decoded.
	ErrReadingDescriptors = errors.New("error reading pull descriptors")
	// ErrInvalidDescriptor is returned for a descriptor without a record type.
	ErrInvalidDescriptor = errors.New("pull descriptor requires a record type")
)
