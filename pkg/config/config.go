// Copyright 2026 The mbufchain Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the environment-driven tunables for
// cmd/mbufchaindemo. mbufchain itself has no configuration surface — its
// sizing constants are fixed for ABI stability — this only configures the
// demo's own collaborators.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all demo-binary configuration.
type Config struct {
	Pages   PageConfig
	Logging LogConfig
}

// PageConfig controls the demo's PageSource backend.
type PageConfig struct {
	// Backend selects "pool" (default, no privileges required) or "mmap".
	Backend string `envconfig:"MBUFCHAIN_PAGE_BACKEND" default:"pool"`
	// Capacity bounds the number of pages the backend will hand out at
	// once. 0 means unbounded.
	Capacity int `envconfig:"MBUFCHAIN_PAGE_CAPACITY" default:"0"`
}

// LogConfig controls the demo's logger.
type LogConfig struct {
	Level       string `envconfig:"MBUFCHAIN_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"MBUFCHAIN_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment, falling back to
// defaults if loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return &Config{
			Pages:   PageConfig{Backend: "pool"},
			Logging: LogConfig{Level: "info"},
		}
	}
	return cfg
}
