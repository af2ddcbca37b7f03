// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The reviewintel Authors

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// GetStructuredConfig builds the application configuration from environment
// variables, applying struct-tag defaults for everything not set.
func GetStructuredConfig() (StructuredConfig, error) {
	var cfg StructuredConfig
	if err := parseEnv(&cfg); err != nil {
		return StructuredConfig{}, err
	}

	return cfg, nil
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
