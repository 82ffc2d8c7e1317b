package indexing

// FieldDoc is one searchable documentation entry for a top-level
// configuration field.
type FieldDoc struct {
	ID          string   `json:"id"`
	Field       string   `json:"field"`
	Description string   `json:"description"`
	Keys        []string `json:"keys,omitempty"`    // Property names declared under the field
	Example     string   `json:"example,omitempty"` // Indented JSON of the first schema example
	URL         string   `json:"url,omitempty"`
	Breadcrumb  string   `json:"breadcrumb,omitempty"` // "vercel.json > rewrites"
	Keywords    []string `json:"keywords,omitempty"`
	TokenCount  int      `json:"token_count,omitempty"`
}
