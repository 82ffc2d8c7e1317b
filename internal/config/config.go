// Package config loads server and CLI settings from an optional YAML file
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/vercel/config-mcp-server/internal/logging"
)

// Settings drives the MCP server and the CLI.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// FileName is the artifact name shown in validation messages.
	FileName string `yaml:"file_name"`
	// IndexPath points at a prebuilt documentation index. Empty builds one in
	// memory at startup.
	IndexPath string `yaml:"index_path"`
	// MaxResults is the default number of documentation search hits.
	MaxResults int `yaml:"max_results"`
	// MetricsAddress enables a Prometheus endpoint on host:port when set.
	MetricsAddress string `yaml:"metrics_address"`
	// LogFile sends server logs to a rotated file instead of stderr.
	LogFile     string           `yaml:"log_file"`
	LogRotation logging.Rotation `yaml:"log_rotation"`
	// CacheSize bounds the validation result cache. Negative disables it.
	CacheSize int `yaml:"cache_size"`
}

const (
	DefaultLogLevel   = "info"
	DefaultFileName   = "vercel.json"
	DefaultMaxResults = 10
	MaxSearchResults  = 20
	DefaultCacheSize  = 256
)

// Defaults returns settings with every default applied.
func Defaults() *Settings {
	s := &Settings{}
	ApplyDefaults(s)
	return s
}

// ApplyDefaults fills empty fields.
func ApplyDefaults(s *Settings) {
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.FileName == "" {
		s.FileName = DefaultFileName
	}
	if s.MaxResults == 0 {
		s.MaxResults = DefaultMaxResults
	}
	if s.CacheSize == 0 {
		s.CacheSize = DefaultCacheSize
	}
}

// Validate reports every invalid setting at once.
func Validate(s *Settings) error {
	var errs []error
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if s.MaxResults <= 0 || s.MaxResults > MaxSearchResults {
		errs = append(errs, fmt.Errorf("max_results: must be between 1 and %d, got %d", MaxSearchResults, s.MaxResults))
	}
	if s.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(s.MetricsAddress); err != nil {
			errs = append(errs, fmt.Errorf("metrics_address: %w", err))
		}
	}
	return errors.Join(errs...)
}
