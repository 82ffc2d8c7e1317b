// Package schema holds the embedded configuration schema and validates one
// top-level field at a time, translating validator output into failures.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vercel/config-mcp-server/internal/suggest"
)

// DocumentURL is the resource name the embedded document is registered under.
const DocumentURL = "https://openapi.vercel.sh/vercel.json"

//go:embed vercel.schema.json
var document []byte

// Document returns a copy of the embedded schema document.
func Document() []byte {
	return bytes.Clone(document)
}

// FieldSpec declares a top-level field to validate and the sibling
// vocabulary used to suggest corrections for its rejected keys.
type FieldSpec struct {
	Name       string
	Vocabulary *suggest.Vocabulary
}

// DefaultFields is the declared validation order. The first field in this
// order that fails decides the reported error.
var DefaultFields = []FieldSpec{
	{Name: "builds"},
	{Name: "routes", Vocabulary: &suggest.RedirectRules},
	{Name: "rewrites", Vocabulary: &suggest.RouteRules},
	{Name: "redirects", Vocabulary: &suggest.RouteRules},
	{Name: "headers", Vocabulary: &suggest.RouteRules},
	{Name: "cleanUrls"},
	{Name: "trailingSlash"},
	{Name: "functions"},
	{Name: "crons"},
	{Name: "version"},
	{Name: "name"},
	{Name: "public"},
	{Name: "regions"},
	{Name: "github"},
	{Name: "framework"},
	{Name: "buildCommand"},
	{Name: "installCommand"},
	{Name: "devCommand"},
	{Name: "ignoreCommand"},
	{Name: "outputDirectory"},
}

// Field is one compiled top-level field.
type Field struct {
	Name        string
	Description string
	Examples    []any
	Vocabulary  *suggest.Vocabulary

	schema *jsonschema.Schema
	node   map[string]any
}

// Catalog is the compiled, read-only set of top-level fields. It is safe for
// concurrent use.
type Catalog struct {
	url    string
	doc    any
	fields []*Field
	byName map[string]*Field
}

// Load parses and compiles a schema document. Every spec must name a
// property of the document root.
func Load(data []byte, url string, specs []FieldSpec) (*Catalog, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	c := &Catalog{
		url:    url,
		doc:    doc,
		byName: make(map[string]*Field, len(specs)),
	}

	for _, spec := range specs {
		node, ok := resolvePointer(doc, "/properties/"+escapeToken(spec.Name)).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("failed to find field %q in schema document", spec.Name)
		}

		sch, err := compiler.Compile(url + "#/properties/" + escapeToken(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for field %q: %w", spec.Name, err)
		}

		f := &Field{
			Name:       spec.Name,
			Vocabulary: spec.Vocabulary,
			schema:     sch,
			node:       node,
		}
		f.Description, _ = node["description"].(string)
		f.Examples, _ = node["examples"].([]any)

		c.fields = append(c.fields, f)
		c.byName[spec.Name] = f
	}

	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(document, DocumentURL, DefaultFields)
})

// Default returns the catalog compiled from the embedded document. It is
// built once per process.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Fields returns the fields in declared order.
func (c *Catalog) Fields() []*Field {
	return c.fields
}

// Field looks up a field by name.
func (c *Catalog) Field(name string) (*Field, bool) {
	f, ok := c.byName[name]
	return f, ok
}

// Names returns the field names in declared order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}
