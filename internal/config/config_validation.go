// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.APIKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Sync.Interval == 0 || cfg.Sync.MaxRetries == 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
