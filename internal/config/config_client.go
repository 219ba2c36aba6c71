package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to fields left empty by every source.
const (
	DefaultZoneName       = "default"
	DefaultStorageDSN     = "memory"
	DefaultRequestTimeout = 15 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
)

// ClientApp holds settings of the sync engine.
type ClientApp struct {
	// DefaultZoneName is assigned to Private records added without a zone.
	DefaultZoneName string
	// DeviceName identifies this installation.
	DeviceName string
	// LogFile is the rotated log file path; empty logs to stdout.
	LogFile string
}

// ClientAdapter holds network settings used by the remote store client.
type ClientAdapter struct {
	// HTTPAddress is the base address of the remote record store.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the bearer token sent with every request.
	Token string
}

// ClientDB contains local persistence settings.
type ClientDB struct {
	// DSN selects the LocalPersistence backend.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs.
	SyncInterval time.Duration
}

// ClientNotifications configures the inbound notification listener.
type ClientNotifications struct {
	HTTPAddress  string
	TokenSignKey string
	TokenIssuer  string
}

// Enabled reports whether the listener should be started.
func (n ClientNotifications) Enabled() bool {
	return n.HTTPAddress != ""
}

// ClientPull holds public-scope pull settings.
type ClientPull struct {
	DescriptorsPath string
}

// ClientConfig is the top-level configuration of syncd assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains sync engine settings.
	App ClientApp
	// Adapter contains remote store transport settings.
	Adapter ClientAdapter
	// Storage contains local persistence settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Notifications contains the notification listener settings.
	Notifications ClientNotifications
	// Pull contains the public pull settings.
	Pull ClientPull
}

// GetClientConfig builds and validates the syncd config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], applies defaults for
// unset fields, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			DefaultZoneName: cfg.App.DefaultZoneName,
			DeviceName:      cfg.App.DeviceName,
			LogFile:         cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Notifications: ClientNotifications{
			HTTPAddress:  cfg.Notifications.HTTPAddress,
			TokenSignKey: cfg.Notifications.TokenSignKey,
			TokenIssuer:  cfg.Notifications.TokenIssuer,
		},
		Pull: ClientPull{DescriptorsPath: cfg.Pull.DescriptorsPath},
	}

	if clientCfg.App.DefaultZoneName == "" {
		clientCfg.App.DefaultZoneName = DefaultZoneName
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultStorageDSN
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}

	return clientCfg
}
