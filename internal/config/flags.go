// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-base-url backend REST API base URL
//	-webdav-url WebDAV endpoint for attachment files
//	-d database DSN (SQLite file path)
//	-api-key backend API key
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-max-retries maximum retry attempts per sync
//	-retry-delays comma-separated retry backoff schedule (e.g., "30s,1m,5m")
func ParseFlags() *StructuredConfig {
	var baseURL string
	var webDavURL string
	var databaseDSN string
	var apiKey string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var maxRetries int
	var retryDelays string

	flag.StringVar(&baseURL, "base-url", "", "Backend REST API base URL")
	flag.StringVar(&webDavURL, "webdav-url", "", "WebDAV endpoint for attachments")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&apiKey, "api-key", "", "Backend API key")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.IntVar(&maxRetries, "max-retries", 0, "Maximum retry attempts per sync")
	flag.StringVar(&retryDelays, "retry-delays", "", "Comma-separated retry backoff schedule")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			APIKey: apiKey,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			WebDavURL:      webDavURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Sync: Sync{
			Interval:    syncInterval,
			MaxRetries:  maxRetries,
			RetryDelays: parseDelays(retryDelays),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// parseDelays converts a comma-separated list of durations into a schedule.
// Entries that fail to parse are skipped.
func parseDelays(s string) []time.Duration {
	if s == "" {
		return nil
	}

	var delays []time.Duration
	for _, part := range strings.Split(s, ",") {
		d, err := time.ParseDuration(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		delays = append(delays, d)
	}
	return delays
}
