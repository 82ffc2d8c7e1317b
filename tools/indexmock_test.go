package tools

import (
	"fmt"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
)

// mockIndex is an in-memory Index for testing
type mockIndex struct {
	id          int
	docCount    uint64
	hits        search.DocumentMatchCollection
	searchError error
	closeError  error
	searches    atomic.Int32
	closed      atomic.Bool
}

// newMockIndex creates a new mock index with the given ID
func newMockIndex(id int) *mockIndex {
	return &mockIndex{
		id:       id,
		docCount: 100, // Default doc count
	}
}

func (m *mockIndex) Search(req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	if m.closed.Load() {
		return nil, fmt.Errorf("index closed")
	}
	m.searches.Add(1)
	if m.searchError != nil {
		return nil, m.searchError
	}
	hits := m.hits
	if req.Size > 0 && len(hits) > req.Size {
		hits = hits[:req.Size]
	}
	return &bleve.SearchResult{
		Request: req,
		Hits:    hits,
		Total:   uint64(len(m.hits)),
	}, nil
}

func (m *mockIndex) DocCount() (uint64, error) {
	if m.closed.Load() {
		return 0, fmt.Errorf("index closed")
	}
	return m.docCount, nil
}

func (m *mockIndex) Close() error {
	if m.closed.Load() {
		return fmt.Errorf("already closed")
	}
	m.closed.Store(true)
	return m.closeError
}

// IsClosed returns true if the index has been closed
func (m *mockIndex) IsClosed() bool {
	return m.closed.Load()
}
