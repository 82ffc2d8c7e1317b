package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/logging"
	"github.com/vercel/config-mcp-server/internal/metrics"
	"github.com/vercel/config-mcp-server/validator"
)

const (
	// ValidationGuidance keeps clients from inventing fixes beyond the reported problem
	ValidationGuidance = "The error above is the first problem found in the configuration. Fix only what it names, then validate again: further problems are reported one at a time. Use search_config_docs or get_field_example before guessing at field shapes."

	CodeFileRead    = "FILE_READ_ERROR"
	CodeInvalidJSON = "INVALID_JSON"
)

// ValidationResult is the outcome of validate_config
type ValidationResult struct {
	Valid    bool             `json:"valid"`
	Source   string           `json:"source"` // "inline" or "file"
	Error    *ValidationError `json:"error,omitempty"`
	Summary  string           `json:"summary"`
	Guidance string           `json:"guidance,omitempty"`
}

// ValidationError represents the reported problem with its location
type ValidationError struct {
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ValidateConfigInput defines input for validate_config tool
type ValidateConfigInput struct {
	Config string `json:"config" jsonschema:"vercel.json content as a JSON string, or a path to the file"`
}

// ValidateConfigOutput defines output for validate_config tool
type ValidateConfigOutput struct {
	ValidationResult
}

// isFilePath determines if a string is a file path rather than JSON content
// Returns true if it looks like a path, false if it looks like JSON
func isFilePath(s string) bool {
	if s == "" {
		return false
	}

	// JSON content starts with { or [ (ignoring whitespace)
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return false
	}

	// Unix absolute path
	if strings.HasPrefix(s, "/") {
		return true
	}

	// Relative path
	if strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../") {
		return true
	}

	// Windows absolute path (C:\, D:\, etc.)
	if len(s) >= 3 && s[1] == ':' && (s[2] == '\\' || s[2] == '/') {
		return true
	}

	// File name with .json extension (no newlines, looks like a filename)
	if strings.HasSuffix(s, ".json") && !strings.Contains(s, "\n") {
		return true
	}

	return false
}

// readConfig returns the configuration text, reading it from disk when
// input looks like a path.
func readConfig(input string) (content []byte, source string, verr *ValidationError) {
	if !isFilePath(input) {
		return []byte(input), "inline", nil
	}

	data, err := os.ReadFile(input)
	if err == nil {
		return data, "file", nil
	}

	var msg string
	switch {
	case os.IsNotExist(err):
		msg = fmt.Sprintf("Configuration file not found: %s", input)
	case os.IsPermission(err):
		msg = fmt.Sprintf("Permission denied reading file: %s", input)
	default:
		msg = fmt.Sprintf("Failed to read configuration file '%s': %s", input, err.Error())
	}
	return nil, "file", &ValidationError{Message: msg, Code: CodeFileRead, Path: input}
}

// Check validates one configuration and records the outcome.
func (t *Toolset) Check(input string) ValidationResult {
	start := time.Now()

	content, source, readErr := readConfig(input)
	if readErr != nil {
		t.metrics.RecordValidation(source, metrics.OutcomeError, "", CodeFileRead, time.Since(start))
		return ValidationResult{
			Source:   source,
			Error:    readErr,
			Summary:  "Configuration file could not be read",
			Guidance: "Ensure the file path is correct and the file exists. Use an absolute path or a path relative to the current working directory.",
		}
	}

	result, cached := t.evaluate(content)
	result.Source = source

	outcome, field, code := metrics.OutcomeValid, "", ""
	switch {
	case result.Valid:
	case result.Error.Code == CodeInvalidJSON:
		outcome, code = metrics.OutcomeError, CodeInvalidJSON
	default:
		outcome, field, code = metrics.OutcomeInvalid, result.Error.Field, result.Error.Code
	}
	t.metrics.RecordValidation(source, outcome, field, code, time.Since(start))

	logging.Debug("configuration checked",
		zap.String("source", source),
		zap.String("outcome", outcome),
		zap.String("code", code),
		zap.Bool("cached", cached),
	)
	return result
}

// evaluate validates content, reusing the result for content seen before.
func (t *Toolset) evaluate(content []byte) (ValidationResult, bool) {
	var key uint64
	if t.cache != nil {
		key = xxhash.Sum64(content)
		if result, ok := t.cache.Get(key); ok {
			return result, true
		}
	}

	result := t.validate(content)
	if t.cache != nil {
		t.cache.Add(key, result)
	}
	return result, false
}

func (t *Toolset) validate(content []byte) ValidationResult {
	verr, err := t.validator.ValidateJSON(content)
	if err != nil {
		return ValidationResult{
			Error: &ValidationError{
				Message: fmt.Sprintf("Invalid JSON: %s", err.Error()),
				Code:    CodeInvalidJSON,
			},
			Summary: "Configuration has JSON syntax errors",
		}
	}
	if verr == nil {
		return ValidationResult{Valid: true, Summary: "Configuration is valid"}
	}
	return ValidationResult{
		Error:    fromValidator(verr),
		Summary:  "Configuration is invalid",
		Guidance: ValidationGuidance,
	}
}

func fromValidator(v *validator.ValidationError) *ValidationError {
	return &ValidationError{
		Message: v.Message,
		Link:    v.Link,
		Code:    v.Code,
		Field:   v.Field,
		Path:    v.Path,
	}
}

// ValidateConfig validates a vercel.json document
func (t *Toolset) ValidateConfig(ctx context.Context, req *mcp.CallToolRequest, input ValidateConfigInput) (*mcp.CallToolResult, ValidateConfigOutput, error) {
	return nil, ValidateConfigOutput{ValidationResult: t.Check(input.Config)}, nil
}

func (t *Toolset) registerValidationTools(server *mcp.Server) int {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "validate_config",
			Description: "Validate a vercel.json configuration against the platform schema and its cross-field rules. Accepts JSON content or a file path. Reports the single most relevant problem with a documentation link and, for misspelled keys, the intended name.\n\nIMPORTANT: Only one problem is reported per call. Fix it and validate again.",
		},
		t.ValidateConfig,
	)
	return 1
}
