package indexing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/vercel/config-mcp-server/internal/schema"
)

// Documents builds one FieldDoc per catalog field. link returns the
// documentation URL of a field.
func Documents(c *schema.Catalog, fileName string, link func(field string) string) ([]FieldDoc, error) {
	docs := make([]FieldDoc, 0, len(c.Fields()))
	for _, f := range c.Fields() {
		doc := FieldDoc{
			ID:          "field_" + CreateAnchor(f.Name),
			Field:       f.Name,
			Description: f.Description,
			Keys:        c.Keys(f),
			URL:         link(f.Name),
		}
		if len(f.Examples) > 0 {
			example, err := json.MarshalIndent(map[string]any{f.Name: f.Examples[0]}, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode example for %s: %w", f.Name, err)
			}
			doc.Example = string(example)
		}
		EnrichMetadata(&doc, fileName)
		docs = append(docs, doc)
	}
	return docs, nil
}

// NewMapping returns the index mapping for field docs. The example is
// stored for display but not analyzed.
func NewMapping() mapping.IndexMapping {
	example := bleve.NewTextFieldMapping()
	example.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("example", example)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = docMapping
	return m
}

// Write indexes docs in batches.
func Write(index bleve.Index, docs []FieldDoc) error {
	batch := index.NewBatch()
	for i, doc := range docs {
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to add doc %s to batch: %w", doc.ID, err)
		}
		if (i+1)%BatchSize == 0 {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to index batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to index final batch: %w", err)
		}
	}
	return nil
}

// BuildMemIndex creates an in-memory index holding docs.
func BuildMemIndex(docs []FieldDoc) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(NewMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory index: %w", err)
	}
	if err := Write(index, docs); err != nil {
		index.Close()
		return nil, err
	}
	return index, nil
}

// VersionFile records the IndexSchemaVersion inside an on-disk index.
const VersionFile = ".index_version"

// BuildDiskIndex replaces any index at dir with one holding docs.
func BuildDiskIndex(dir string, docs []FieldDoc) (bleve.Index, error) {
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to remove old index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	index, err := bleve.New(dir, NewMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	if err := Write(index, docs); err != nil {
		index.Close()
		return nil, err
	}
	if err := WriteVersion(dir); err != nil {
		index.Close()
		return nil, err
	}
	return index, nil
}

// WriteVersion stamps dir with the current IndexSchemaVersion.
func WriteVersion(dir string) error {
	path := filepath.Join(dir, VersionFile)
	if err := os.WriteFile(path, []byte(strconv.Itoa(IndexSchemaVersion)), 0644); err != nil {
		return fmt.Errorf("failed to write index version: %w", err)
	}
	return nil
}

// ReadVersion returns the version stamped in dir, or 0 when absent.
func ReadVersion(dir string) int {
	data, err := os.ReadFile(filepath.Join(dir, VersionFile))
	if err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return v
}
