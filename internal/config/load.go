package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads settings from path, applies defaults and environment overrides,
// then validates. An empty path skips the file.
//
// Environment variables always take precedence over the file:
// VCMCP_LOG_LEVEL, VCMCP_FILE_NAME, VCMCP_INDEX_PATH, VCMCP_MAX_RESULTS,
// VCMCP_METRICS_ADDRESS, VCMCP_LOG_FILE, VCMCP_CACHE_SIZE.
func Load(path string) (*Settings, error) {
	var s Settings

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %q: %w", path, err)
		}
	}

	ApplyDefaults(&s)
	applyEnvOverrides(&s)

	if err := Validate(&s); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

func applyEnvOverrides(s *Settings) {
	if val := os.Getenv("VCMCP_LOG_LEVEL"); val != "" {
		s.LogLevel = val
	}
	if val := os.Getenv("VCMCP_FILE_NAME"); val != "" {
		s.FileName = val
	}
	if val := os.Getenv("VCMCP_INDEX_PATH"); val != "" {
		s.IndexPath = val
	}
	if val := os.Getenv("VCMCP_MAX_RESULTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			s.MaxResults = i
		}
	}
	if val := os.Getenv("VCMCP_METRICS_ADDRESS"); val != "" {
		s.MetricsAddress = val
	}
	if val := os.Getenv("VCMCP_LOG_FILE"); val != "" {
		s.LogFile = val
	}
	if val := os.Getenv("VCMCP_CACHE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			s.CacheSize = i
		}
	}
}
