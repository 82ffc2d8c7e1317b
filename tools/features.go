package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vercel/config-mcp-server/internal/features"
	"github.com/vercel/config-mcp-server/internal/schema"
)

// FieldSummary represents lightweight field info for listing
type FieldSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DocsURL     string `json:"docs_url,omitempty"`
	Present     bool   `json:"present,omitempty"`
	Entries     int    `json:"entries,omitempty"`
}

// ListConfigFieldsInput defines input for list_config_fields tool
type ListConfigFieldsInput struct {
	// No input needed - returns all fields
}

// ListConfigFieldsOutput defines output for list_config_fields tool
type ListConfigFieldsOutput struct {
	Fields []FieldSummary `json:"fields"`
	Count  int            `json:"count"`
}

// ListConfigFields returns every known top-level field in validation order
func (t *Toolset) ListConfigFields(ctx context.Context, req *mcp.CallToolRequest, input ListConfigFieldsInput) (*mcp.CallToolResult, ListConfigFieldsOutput, error) {
	catalog := t.validator.Catalog()
	links := t.validator.Links()

	summaries := make([]FieldSummary, 0, len(catalog.Fields()))
	for _, f := range catalog.Fields() {
		summaries = append(summaries, FieldSummary{
			Name:        f.Name,
			Description: f.Description,
			DocsURL:     links.Field(f.Name),
		})
	}

	return nil, ListConfigFieldsOutput{
		Fields: summaries,
		Count:  len(summaries),
	}, nil
}

// DescribeConfigInput defines input for describe_config tool
type DescribeConfigInput struct {
	Config string `json:"config" jsonschema:"vercel.json content as a JSON string, or a path to the file"`
}

// DescribeConfigOutput defines output for describe_config tool
type DescribeConfigOutput struct {
	Paradigm     features.Paradigm `json:"paradigm"` // "legacy", "managed", "mixed" or "empty"
	Fields       []FieldSummary    `json:"fields"`
	UnknownKeys  []string          `json:"unknown_keys"`
	Destinations []string          `json:"destinations"`
	// InvalidPatterns lists functions keys that are not valid globs
	InvalidPatterns []string `json:"invalid_function_patterns,omitempty"`
	Message         string   `json:"message"`
}

// DescribeConfig reports which fields a configuration uses and its routing style
func (t *Toolset) DescribeConfig(ctx context.Context, req *mcp.CallToolRequest, input DescribeConfigInput) (*mcp.CallToolResult, DescribeConfigOutput, error) {
	content, _, readErr := readConfig(input.Config)
	if readErr != nil {
		return nil, DescribeConfigOutput{}, fmt.Errorf("%s", readErr.Message)
	}

	config, err := schema.Parse(content)
	if err != nil {
		return nil, DescribeConfigOutput{}, fmt.Errorf("invalid JSON: %w", err)
	}

	catalog := t.validator.Catalog()
	links := t.validator.Links()
	summary := features.Describe(config, catalog.Names())

	fields := make([]FieldSummary, 0, len(summary.Fields))
	for _, name := range summary.Fields {
		f, _ := catalog.Field(name)
		fields = append(fields, FieldSummary{
			Name:        name,
			Description: f.Description,
			DocsURL:     links.Field(name),
			Present:     true,
			Entries:     summary.Counts[name],
		})
	}

	// Initialize as empty slices (not nil) to ensure JSON marshals as [] instead of null
	unknown := summary.Unknown
	if unknown == nil {
		unknown = []string{}
	}

	return nil, DescribeConfigOutput{
		Paradigm:        summary.Paradigm,
		Fields:          fields,
		UnknownKeys:     unknown,
		Destinations:    features.FindDestinations(config),
		InvalidPatterns: features.InvalidPatterns(features.FunctionPatterns(config)),
		Message:         paradigmMessage(summary.Paradigm),
	}, nil
}

func paradigmMessage(p features.Paradigm) string {
	switch p {
	case features.ParadigmLegacy:
		return "Uses legacy routing (builds/routes)."
	case features.ParadigmManaged:
		return "Uses managed routing (rewrites, redirects, headers, cleanUrls, trailingSlash)."
	case features.ParadigmMixed:
		return "Mixes routes with rewrites, redirects, headers, cleanUrls or trailingSlash. The platform rejects routes combined with these fields; migrate routes to the managed fields."
	}
	return "No routing fields are configured."
}

func (t *Toolset) registerFeatureTools(server *mcp.Server) int {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_config_fields",
			Description: "List every top-level vercel.json field in validation order with its description and documentation link",
		},
		t.ListConfigFields,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "describe_config",
			Description: "Describe a vercel.json configuration: which known fields it uses, unknown top-level keys, every rewrite/route destination, and whether it uses legacy, managed or mixed routing",
		},
		t.DescribeConfig,
	)
	return 2
}
