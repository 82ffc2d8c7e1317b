package validator

import (
	"strings"

	"github.com/vercel/config-mcp-server/internal/crossfield"
)

// DefaultDocsURL is the project configuration reference page.
const DefaultDocsURL = "https://vercel.com/docs/concepts/projects/project-configuration"

// LinkTable maps failures to documentation URLs.
type LinkTable struct {
	// BaseURL is the page field fragments are appended to.
	BaseURL string
	// Fragments overrides the fragment of a field. Fields not listed use
	// their lower-cased name.
	Fragments map[string]string
	// Checks maps a cross-field violation code to its own link.
	Checks map[string]string
}

// DefaultLinks returns the link table for the public documentation.
func DefaultLinks() LinkTable {
	return LinkTable{
		BaseURL: DefaultDocsURL,
		Checks: map[string]string{
			crossfield.CodeFunctionsAndBuilds: "https://vercel.link/functions-and-builds",
		},
	}
}

// Field returns the documentation link of a top-level field.
func (t LinkTable) Field(name string) string {
	frag, ok := t.Fragments[name]
	if !ok {
		frag = strings.ToLower(name)
	}
	return t.BaseURL + "#" + frag
}

// Violation returns the link for a cross-field violation: its own entry if
// the table has one, otherwise the link of the field it names.
func (t LinkTable) Violation(v *crossfield.Violation) string {
	if link, ok := t.Checks[v.Code]; ok {
		return link
	}
	if v.Field != "" {
		return t.Field(v.Field)
	}
	return t.BaseURL
}
