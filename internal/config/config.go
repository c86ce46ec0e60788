// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container assembled by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the API key.
	App App `envPrefix:"APP_"`

	// Adapter holds configuration for the backend REST transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local object database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds sync scheduling and retry settings.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// APIKey is the backend API key. The backend issues keys as signed
	// tokens; the user id is extracted from the key's claims when the
	// backend cannot be reached for key verification.
	// Env: APP_API_KEY
	APIKey string `env:"API_KEY"`
}

// Adapter holds network settings used by the backend transport layer.
type Adapter struct {
	// BaseURL is the base URL of the versioned REST API.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// WebDavURL is the optional WebDAV endpoint for attachment files.
	// When empty, WebDAV deletions are skipped.
	// Env: ADAPTER_WEBDAV_URL
	WebDavURL string `env:"WEBDAV_URL"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local storage backend settings.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite connection string (a file path).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Sync contains sync scheduling and retry settings.
type Sync struct {
	// Interval defines how often the background scheduler starts a sync.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// MaxRetries caps how many times a finished sync may be re-armed with a
	// narrower scope before giving up.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// RetryDelays is the backoff schedule between retry attempts. Attempt n
	// waits RetryDelays[n-1], clamped to the last entry.
	// Env: SYNC_RETRY_DELAYS, comma-separated durations.
	RetryDelays []time.Duration `env:"RETRY_DELAYS" envSeparator:","`
}
