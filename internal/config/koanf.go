// Cinefuzz - Hybrid Fuzzy + ANN Movie Scoring Service
// Copyright 2026 Cinefuzz contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinefuzz/cinefuzz

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CINEFUZZ_CONFIG"

// envPrefix namespaces every configuration environment variable.
const envPrefix = "CINEFUZZ_"

// DefaultConfigPaths are searched in order when no explicit path is
// set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinefuzz/config.yaml",
	"/etc/cinefuzz/config.yml",
}

// Load builds the configuration with layered precedence:
//
//  1. Struct defaults
//  2. Optional YAML config file
//  3. CINEFUZZ_-prefixed environment variables
//
// and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// CINEFUZZ_SERVER_PORT -> server.port; only the first underscore
	// separates section from key, so CINEFUZZ_SCORING_CACHE_TTL maps
	// to scoring.cache_ttl.
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	normalizeSliceFields(k)

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// normalizeSliceFields splits comma-separated env strings into slices
// for fields typed []string.
func normalizeSliceFields(k *koanf.Koanf) {
	for _, key := range []string{"api.cors_origins"} {
		if raw, ok := k.Get(key).(string); ok {
			parts := strings.Split(raw, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			_ = k.Set(key, parts)
		}
	}
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
