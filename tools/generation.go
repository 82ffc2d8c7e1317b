package tools

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetFieldExampleInput defines input for get_field_example tool
type GetFieldExampleInput struct {
	Field string `json:"field" jsonschema:"Top-level field name, e.g. rewrites or functions"`
}

// GetFieldExampleOutput defines output for get_field_example tool
type GetFieldExampleOutput struct {
	Field         string         `json:"field"`
	Example       map[string]any `json:"example"`
	Keys          []string       `json:"keys"`
	Documentation string         `json:"documentation"`
	DocsURL       string         `json:"docs_url"`
}

// GetFieldExample returns the schema example for a field
func (t *Toolset) GetFieldExample(ctx context.Context, req *mcp.CallToolRequest, input GetFieldExampleInput) (*mcp.CallToolResult, GetFieldExampleOutput, error) {
	catalog := t.validator.Catalog()

	f, ok := catalog.Field(input.Field)
	if !ok {
		// Fall back to a case-insensitive match
		query := strings.ToLower(strings.TrimSpace(input.Field))
		for _, candidate := range catalog.Fields() {
			if strings.ToLower(candidate.Name) == query {
				f, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, GetFieldExampleOutput{}, fmt.Errorf("field '%s' not found", input.Field)
	}

	example := map[string]any{}
	if len(f.Examples) > 0 {
		example[f.Name] = f.Examples[0]
	}
	keys := catalog.Keys(f)
	if keys == nil {
		keys = []string{}
	}

	return nil, GetFieldExampleOutput{
		Field:         f.Name,
		Example:       example,
		Keys:          keys,
		Documentation: f.Description,
		DocsURL:       t.validator.Links().Field(f.Name),
	}, nil
}

// GenerateRuleInput defines input for generate_rule tool
type GenerateRuleInput struct {
	Kind        string            `json:"kind" jsonschema:"One of rewrite, redirect or header"`
	Source      string            `json:"source" jsonschema:"Source path pattern, e.g. /blog/:slug"`
	Destination string            `json:"destination,omitempty" jsonschema:"Destination path or URL (rewrite and redirect)"`
	Permanent   *bool             `json:"permanent,omitempty" jsonschema:"Permanent redirect (redirect only, defaults to true)"`
	Headers     map[string]string `json:"headers,omitempty" jsonschema:"Response headers to set (header only)"`
}

// GenerateRuleOutput defines output for generate_rule tool
type GenerateRuleOutput struct {
	Config   map[string]any   `json:"config"`
	Valid    bool             `json:"valid"`
	Error    *ValidationError `json:"error,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// GenerateRule builds a one-rule configuration fragment and validates it
func (t *Toolset) GenerateRule(ctx context.Context, req *mcp.CallToolRequest, input GenerateRuleInput) (*mcp.CallToolResult, GenerateRuleOutput, error) {
	rule := map[string]any{"source": input.Source}
	warnings := []string{}

	var field string
	switch strings.ToLower(input.Kind) {
	case "rewrite":
		field = "rewrites"
		rule["destination"] = input.Destination
	case "redirect":
		field = "redirects"
		rule["destination"] = input.Destination
		permanent := true
		if input.Permanent != nil {
			permanent = *input.Permanent
		}
		rule["permanent"] = permanent
	case "header":
		field = "headers"
		pairs := make([]any, 0, len(input.Headers))
		for _, key := range slices.Sorted(maps.Keys(input.Headers)) {
			pairs = append(pairs, map[string]any{"key": key, "value": input.Headers[key]})
		}
		rule["headers"] = pairs
		if len(pairs) == 0 {
			warnings = append(warnings, "No headers given; the rule has an empty headers list")
		}
	default:
		return nil, GenerateRuleOutput{}, fmt.Errorf("unknown rule kind '%s' (want rewrite, redirect or header)", input.Kind)
	}

	if !strings.HasPrefix(input.Source, "/") {
		warnings = append(warnings, "Source patterns usually start with '/'")
	}

	config := map[string]any{field: []any{rule}}
	output := GenerateRuleOutput{Config: config, Valid: true, Warnings: warnings}
	if verr := t.validator.Validate(config); verr != nil {
		output.Valid = false
		output.Error = fromValidator(verr)
	}
	return nil, output, nil
}

func (t *Toolset) registerGenerationTools(server *mcp.Server) int {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_field_example",
			Description: "Get the documented example, declared keys and documentation link for a top-level vercel.json field",
		},
		t.GetFieldExample,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "generate_rule",
			Description: "Generate a single rewrite, redirect or header rule as a vercel.json fragment, validated before it is returned",
		},
		t.GenerateRule,
	)
	return 2
}
