package tools

import (
	"errors"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/indexing"
	"github.com/vercel/config-mcp-server/internal/logging"
)

// Index is the part of bleve.Index the doc search uses. Tests swap in mocks.
type Index interface {
	Search(req *bleve.SearchRequest) (*bleve.SearchResult, error)
	DocCount() (uint64, error)
	Close() error
}

// errStaleIndex marks a prebuilt index stamped with another schema version.
var errStaleIndex = errors.New("doc index schema version mismatch")

const (
	sourceDisk   = "disk"
	sourceMemory = "memory"
)

// openPrebuilt opens an index written by `vclint index`.
func openPrebuilt(path string) (Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if have := indexing.ReadVersion(path); have != indexing.IndexSchemaVersion {
		return nil, fmt.Errorf("%w: have %d, want %d", errStaleIndex, have, indexing.IndexSchemaVersion)
	}
	index, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open doc index: %w", err)
	}
	return index, nil
}

// loadIndex prefers the prebuilt index at index_path and falls back to an
// in-memory index built from the catalog.
func (t *Toolset) loadIndex() (Index, string, error) {
	if path := t.settings.IndexPath; path != "" {
		index, err := openPrebuilt(path)
		if err == nil {
			return index, sourceDisk, nil
		}
		logging.Warn("prebuilt doc index unusable, building in memory",
			zap.String("path", path), zap.Error(err))
	}

	docs, err := indexing.Documents(t.validator.Catalog(), t.settings.FileName, t.validator.Links().Field)
	if err != nil {
		return nil, "", err
	}
	index, err := indexing.BuildMemIndex(docs)
	if err != nil {
		return nil, "", err
	}
	return index, sourceMemory, nil
}
