package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// APIKey is the backend API key used for all authenticated requests.
	APIKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the base URL of the versioned REST API.
	BaseURL string
	// WebDavURL is the optional WebDAV endpoint for attachment files.
	WebDavURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains sync scheduling and retry settings.
type ClientSync struct {
	// Interval defines how often the background scheduler starts a sync.
	Interval time.Duration
	// MaxRetries caps re-armed sync attempts.
	MaxRetries int
	// RetryDelays is the backoff schedule between retry attempts.
	RetryDelays []time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains scheduling and retry settings.
	Sync ClientSync
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration (env, then flags, then JSON file).
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			APIKey: cfg.App.APIKey,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			WebDavURL:      cfg.Adapter.WebDavURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval:    cfg.Sync.Interval,
			MaxRetries:  cfg.Sync.MaxRetries,
			RetryDelays: cfg.Sync.RetryDelays,
		},
	}

	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

// applyDefaults fills settings the sync engine cannot run without.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = 30 * time.Second
	}
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = 3
	}
	if len(cfg.Sync.RetryDelays) == 0 {
		cfg.Sync.RetryDelays = []time.Duration{
			30 * time.Second,
			time.Minute,
			5 * time.Minute,
		}
	}
}
