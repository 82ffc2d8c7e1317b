// Package validator checks a vercel.json document and reports the single
// most useful problem with it, together with a documentation link.
//
// Structural checks run field by field in a fixed order; the first field
// that fails is reported. When every field is structurally valid the
// cross-field rules run. A nil result means the document is valid.
package validator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vercel/config-mcp-server/internal/crossfield"
	"github.com/vercel/config-mcp-server/internal/failure"
	"github.com/vercel/config-mcp-server/internal/schema"
	"github.com/vercel/config-mcp-server/internal/suggest"
)

// DefaultFileName is the artifact name used in messages.
const DefaultFileName = "vercel.json"

// CodeInvalidConfig marks structural failures.
const CodeInvalidConfig = "INVALID_VERCEL_CONFIG"

// ValidationError is the outcome of a failed validation. It is a value, not
// a fault: an invalid document is an expected result.
type ValidationError struct {
	Message string `json:"message"`
	Link    string `json:"link"`
	Code    string `json:"code"`
	// Field is the top-level field the problem was found in, if any.
	Field string `json:"field,omitempty"`
	// Path is the rendered location of a structural failure.
	Path string `json:"path,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Option configures a Validator.
type Option func(*Validator)

// WithFileName changes the artifact name in the message prefix.
func WithFileName(name string) Option {
	return func(v *Validator) {
		v.fileName = name
	}
}

// WithLinks replaces the documentation link table.
func WithLinks(links LinkTable) Option {
	return func(v *Validator) {
		v.links = links
	}
}

// WithChecks replaces the cross-field checks. They run in the given order.
func WithChecks(checks ...crossfield.Check) Option {
	return func(v *Validator) {
		v.checks = checks
		v.customChecks = true
	}
}

// WithStrictCron also rejects cron schedules that the standard five-field
// parser cannot read. The schema only bounds their length.
func WithStrictCron() Option {
	return func(v *Validator) {
		v.strictCron = true
	}
}

// WithCatalog validates against a catalog other than the embedded one.
func WithCatalog(c *schema.Catalog) Option {
	return func(v *Validator) {
		v.catalog = c
	}
}

// Validator is immutable once built and safe for concurrent use.
type Validator struct {
	catalog      *schema.Catalog
	links        LinkTable
	fileName     string
	checks       []crossfield.Check
	customChecks bool
	strictCron   bool
}

// New builds a Validator. Without WithCatalog it compiles the embedded
// schema, which only fails if the embedded document is broken.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		links:    DefaultLinks(),
		fileName: DefaultFileName,
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.catalog == nil {
		c, err := schema.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load schema catalog: %w", err)
		}
		v.catalog = c
	}
	if !v.customChecks {
		v.checks = []crossfield.Check{crossfield.FunctionsAndBuilds}
	}
	if v.strictCron {
		v.checks = append(v.checks[:len(v.checks):len(v.checks)], crossfield.NewCronSchedules(v.prefix()))
	}
	return v, nil
}

var defaultValidator = sync.OnceValue(func() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
})

// Default returns the process-wide Validator built from the embedded data.
func Default() *Validator {
	return defaultValidator()
}

// ValidateConfig validates config with the default Validator.
func ValidateConfig(config map[string]any) *ValidationError {
	return Default().Validate(config)
}

// Catalog returns the schema catalog in use.
func (v *Validator) Catalog() *schema.Catalog {
	return v.catalog
}

// Links returns the documentation link table in use.
func (v *Validator) Links() LinkTable {
	return v.links
}

func (v *Validator) prefix() string {
	return "Invalid " + v.fileName + " - "
}

// Validate checks config and returns nil when it is valid. A nil config is
// the empty document.
func (v *Validator) Validate(config map[string]any) *ValidationError {
	if config == nil {
		config = map[string]any{}
	}
	doc, err := schema.Normalize(config)
	if err != nil {
		if inner := errors.Unwrap(err); inner != nil {
			err = inner
		}
		return &ValidationError{
			Message: fmt.Sprintf("%sconfiguration is not valid JSON: %v.", v.prefix(), err),
			Link:    v.links.BaseURL,
			Code:    CodeInvalidConfig,
		}
	}
	return v.validate(doc)
}

// ValidateJSON parses text and validates it. Malformed text is reported as
// an error, not as a ValidationError.
func (v *Validator) ValidateJSON(data []byte) (*ValidationError, error) {
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	return v.validate(doc), nil
}

func (v *Validator) validate(doc map[string]any) *ValidationError {
	for _, field := range v.catalog.Fields() {
		value, ok := doc[field.Name]
		if !ok {
			continue
		}
		failures := v.catalog.Validate(field.Name, value)
		if len(failures) == 0 {
			continue
		}
		annotate(failures, field.Vocabulary)
		if selected, ok := failure.Select(failures); ok {
			return v.structural(selected)
		}
	}

	if violation := crossfield.Run(doc, v.checks...); violation != nil {
		return &ValidationError{
			Message: violation.Message,
			Link:    v.links.Violation(violation),
			Code:    violation.Code,
			Field:   violation.Field,
		}
	}
	return nil
}

func (v *Validator) structural(f failure.Failure) *ValidationError {
	return &ValidationError{
		Message: v.prefix() + describe(f),
		Link:    v.links.Field(f.Field()),
		Code:    CodeInvalidConfig,
		Field:   f.Field(),
		Path:    f.Path.Render(),
	}
}

// annotate attaches suggestions to rejected property failures, including
// those nested in branch groups.
func annotate(failures []failure.Failure, vocab *suggest.Vocabulary) {
	for i := range failures {
		f := &failures[i]
		if len(f.Causes) > 0 {
			annotate(f.Causes, vocab)
		}
		if f.Kind != failure.AdditionalProperty {
			continue
		}
		if m, ok := suggest.Suggest(f.Property, f.Allowed, vocab); ok {
			f.Suggestion = m.Name
			f.Rank = m.Rank
		}
	}
}
