package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vercel/config-mcp-server/internal/config"
	"github.com/vercel/config-mcp-server/validator"
)

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"absolute path", "/path/to/vercel.json", true},
		{"relative path", "./vercel.json", true},
		{"parent path", "../site/vercel.json", true},
		{"bare file name", "vercel.json", true},
		{"windows path", `C:\site\vercel.json`, true},
		{"json string", `{"cleanUrls": true}`, false},
		{"json with leading space", "  {", false},
		{"json array", `[1]`, false},
		{"empty", "", false},
		{"multi-line text", "one\ntwo.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isFilePath(tt.input)
			if result != tt.expected {
				t.Errorf("isFilePath(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCheckValidInline(t *testing.T) {
	ts, registry := newTestToolset(t)

	result := ts.Check(`{"cleanUrls": true, "trailingSlash": false}`)
	if !result.Valid || result.Error != nil {
		t.Fatalf("expected valid, got %+v", result)
	}
	if result.Source != "inline" {
		t.Errorf("expected inline source, got %q", result.Source)
	}
	if got := counterValue(t, registry, "vercel_config_validations_total", map[string]string{"outcome": "valid"}); got != 1 {
		t.Errorf("expected 1 valid validation, got %v", got)
	}
}

func TestCheckInvalid(t *testing.T) {
	ts, registry := newTestToolset(t)

	result := ts.Check(`{"cleanUrls": "yes"}`)
	if result.Valid || result.Error == nil {
		t.Fatalf("expected invalid, got %+v", result)
	}
	if result.Error.Message != "Invalid vercel.json - `cleanUrls` should be boolean." {
		t.Errorf("unexpected message %q", result.Error.Message)
	}
	if result.Error.Code != "INVALID_VERCEL_CONFIG" || result.Error.Field != "cleanUrls" {
		t.Errorf("unexpected error %+v", result.Error)
	}
	if !strings.Contains(result.Error.Link, "#") {
		t.Errorf("expected a field link, got %q", result.Error.Link)
	}
	if result.Guidance == "" {
		t.Error("expected guidance on invalid configs")
	}
	if got := counterValue(t, registry, "vercel_config_failures_total", map[string]string{"field": "cleanUrls"}); got != 1 {
		t.Errorf("expected 1 cleanUrls failure, got %v", got)
	}
}

func TestCheckInvalidJSON(t *testing.T) {
	ts, registry := newTestToolset(t)

	result := ts.Check(`{"cleanUrls": `)
	if result.Error == nil || result.Error.Code != CodeInvalidJSON {
		t.Fatalf("expected INVALID_JSON, got %+v", result)
	}
	if !strings.HasPrefix(result.Error.Message, "Invalid JSON: ") {
		t.Errorf("unexpected message %q", result.Error.Message)
	}
	if got := counterValue(t, registry, "vercel_config_validations_total", map[string]string{"outcome": "error"}); got != 1 {
		t.Errorf("expected 1 error outcome, got %v", got)
	}
}

func TestCheckFile(t *testing.T) {
	ts, _ := newTestToolset(t)

	path := filepath.Join(t.TempDir(), "vercel.json")
	if err := os.WriteFile(path, []byte(`{"functions": {"api/a.js": {"memory": 64}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	result := ts.Check(path)
	if result.Source != "file" {
		t.Errorf("expected file source, got %q", result.Source)
	}
	if result.Error == nil || result.Error.Field != "functions" {
		t.Fatalf("expected functions failure, got %+v", result)
	}
	if result.Error.Message != "Invalid vercel.json - `functions['api/a.js'].memory` should be >= 128." {
		t.Errorf("unexpected message %q", result.Error.Message)
	}
}

func TestCheckMissingFile(t *testing.T) {
	ts, _ := newTestToolset(t)

	path := filepath.Join(t.TempDir(), "missing.json")
	result := ts.Check(path)
	if result.Error == nil || result.Error.Code != CodeFileRead {
		t.Fatalf("expected FILE_READ_ERROR, got %+v", result)
	}
	if result.Error.Message != "Configuration file not found: "+path {
		t.Errorf("unexpected message %q", result.Error.Message)
	}
	if result.Error.Path != path {
		t.Errorf("expected path %q, got %q", path, result.Error.Path)
	}
}

func TestValidateConfigHandler(t *testing.T) {
	ts, _ := newTestToolset(t)

	_, out, err := ts.ValidateConfig(context.Background(), nil, ValidateConfigInput{
		Config: `{"rewrites": [{"src": "/a", "destination": "/b"}]}`,
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if out.Valid || out.Error == nil {
		t.Fatalf("expected invalid, got %+v", out)
	}
	if !strings.Contains(out.Error.Message, "Did you mean `source`?") {
		t.Errorf("expected suggestion, got %q", out.Error.Message)
	}
}

func TestCheckCachesResults(t *testing.T) {
	ts, registry := newTestToolset(t)

	first := ts.Check(`{"cleanUrls": "yes"}`)
	second := ts.Check(`{"cleanUrls": "yes"}`)

	if ts.cache.Len() != 1 {
		t.Errorf("expected one cached result, got %d", ts.cache.Len())
	}
	if first.Error != second.Error {
		t.Error("expected the cached error to be reused")
	}
	if got := counterValue(t, registry, "vercel_config_validations_total", map[string]string{"outcome": "invalid"}); got != 2 {
		t.Errorf("expected both checks recorded, got %v", got)
	}

	ts.Check(`{"cleanUrls": true}`)
	if ts.cache.Len() != 2 {
		t.Errorf("expected two cached results, got %d", ts.cache.Len())
	}
}

func TestCheckCacheSourceIsPerCall(t *testing.T) {
	ts, _ := newTestToolset(t)

	content := `{"trailingSlash": true}`
	path := filepath.Join(t.TempDir(), "vercel.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if got := ts.Check(content).Source; got != "inline" {
		t.Errorf("expected inline, got %q", got)
	}
	if got := ts.Check(path).Source; got != "file" {
		t.Errorf("expected file for cached content, got %q", got)
	}
}

func TestCheckCacheDisabled(t *testing.T) {
	settings := config.Defaults()
	settings.CacheSize = -1
	ts := New(validator.Default(), settings, nil)
	defer ts.Close()

	ts.Check(`{}`)
	if ts.cache != nil {
		t.Error("expected no cache when disabled")
	}
}
