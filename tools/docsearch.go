package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/config"
	"github.com/vercel/config-mcp-server/internal/logging"
)

// SearchConfigDocsInput defines input for search_config_docs tool
type SearchConfigDocsInput struct {
	Query      string `json:"query" jsonschema:"Search terms, e.g. 'redirect status code' or 'maxDuration'"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 10, max 20)"`
}

// SearchResult is one documentation hit
type SearchResult struct {
	ID          string   `json:"id"`
	Field       string   `json:"field"`
	Description string   `json:"description"`
	Keys        []string `json:"keys,omitempty"`
	Example     string   `json:"example,omitempty"`
	URL         string   `json:"url,omitempty"`
	Breadcrumb  string   `json:"breadcrumb,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	TokenCount  int      `json:"token_count,omitempty"`
	Score       float64  `json:"score"`
}

// SearchConfigDocsOutput defines output for search_config_docs tool
type SearchConfigDocsOutput struct {
	Results    []SearchResult `json:"results"`
	Query      string         `json:"query"`
	TotalHits  int            `json:"total_hits"`
	SourceURLs []string       `json:"source_urls"`
}

// RefreshConfigDocsInput defines input for refresh_config_docs tool
type RefreshConfigDocsInput struct {
	// No input needed - reloads from index_path or rebuilds in memory
}

// RefreshConfigDocsOutput defines output for refresh_config_docs tool
type RefreshConfigDocsOutput struct {
	Source      string    `json:"source"` // "disk" or "memory"
	DocsIndexed int       `json:"docs_indexed"`
	LastUpdate  time.Time `json:"last_update"`
	Message     string    `json:"message"`
}

// indexHolder manages concurrent access to the documentation index
type indexHolder struct {
	// current holds the active index pointer (atomic access for lock-free reads)
	current atomic.Pointer[Index]

	// refreshMu prevents concurrent refresh operations
	// NOT used for searches - they are lock-free via atomic pointer
	refreshMu sync.Mutex

	// wg tracks in-flight search operations for graceful cleanup of old indexes
	wg sync.WaitGroup
}

// acquire returns the active index and a release func. The index is nil
// when none is loaded.
func (h *indexHolder) acquire() (Index, func()) {
	// Track in-flight searches (MUST be before Load)
	h.wg.Add(1)
	ptr := h.current.Load()
	if ptr == nil {
		h.wg.Done()
		return nil, func() {}
	}
	return *ptr, h.wg.Done
}

// swap installs idx and closes the previous index once in-flight searches
// drain. The returned channel closes when the old index is closed.
func (h *indexHolder) swap(idx Index) <-chan struct{} {
	done := make(chan struct{})
	old := h.current.Swap(&idx)
	if old == nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		h.wg.Wait()
		if err := (*old).Close(); err != nil {
			logging.Warn("failed to close old doc index", zap.Error(err))
		}
	}()
	return done
}

// close swaps the index to nil, waits for searches and closes it.
func (h *indexHolder) close() error {
	ptr := h.current.Swap(nil)
	if ptr == nil {
		return nil
	}
	h.wg.Wait()
	if err := (*ptr).Close(); err != nil {
		return fmt.Errorf("failed to close doc index: %w", err)
	}
	return nil
}

// InitializeDocSearch loads the documentation index
func (t *Toolset) InitializeDocSearch() error {
	_, err := t.refresh()
	return err
}

func (t *Toolset) refresh() (RefreshConfigDocsOutput, error) {
	startTime := time.Now()

	t.docs.refreshMu.Lock()
	defer t.docs.refreshMu.Unlock()

	index, source, err := t.loadIndex()
	if err != nil {
		return RefreshConfigDocsOutput{}, fmt.Errorf("failed to load doc index: %w", err)
	}
	count, _ := index.DocCount()
	t.docs.swap(index)

	logging.Info("documentation search initialized",
		zap.String("source", source),
		zap.Uint64("docs", count),
		zap.Duration("elapsed", time.Since(startTime).Round(time.Millisecond)),
	)
	return RefreshConfigDocsOutput{
		Source:      source,
		DocsIndexed: int(count),
		LastUpdate:  time.Now(),
		Message:     fmt.Sprintf("Documentation index loaded from %s, %d docs indexed", source, count),
	}, nil
}

func (t *Toolset) resultLimit(requested int) int {
	if requested <= 0 {
		requested = t.settings.MaxResults
	}
	if requested <= 0 {
		requested = config.DefaultMaxResults
	}
	if requested > config.MaxSearchResults {
		requested = config.MaxSearchResults
	}
	return requested
}

// SearchConfigDocs searches the field documentation
func (t *Toolset) SearchConfigDocs(ctx context.Context, req *mcp.CallToolRequest, input SearchConfigDocsInput) (*mcp.CallToolResult, SearchConfigDocsOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchConfigDocsOutput{}, fmt.Errorf("query is required")
	}

	index, release := t.docs.acquire()
	if index == nil {
		// If index not initialized, try to initialize it now
		logging.Info("doc index not initialized, initializing now")
		if err := t.InitializeDocSearch(); err != nil {
			return nil, SearchConfigDocsOutput{}, fmt.Errorf("failed to initialize documentation index: %w", err)
		}
		index, release = t.docs.acquire()
		if index == nil {
			return nil, SearchConfigDocsOutput{}, fmt.Errorf("documentation index unavailable")
		}
	}
	defer release()

	t.metrics.RecordSearch()

	search := bleve.NewSearchRequest(bleve.NewMatchQuery(input.Query))
	search.Size = t.resultLimit(input.MaxResults)
	search.Fields = []string{"*"}

	searchResults, err := index.Search(search)
	if err != nil {
		return nil, SearchConfigDocsOutput{}, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		result := SearchResult{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if field, ok := hit.Fields["field"].(string); ok {
			result.Field = field
		}
		if description, ok := hit.Fields["description"].(string); ok {
			result.Description = description
		}
		if example, ok := hit.Fields["example"].(string); ok {
			result.Example = example
		}
		if url, ok := hit.Fields["url"].(string); ok {
			result.URL = url
		}
		if breadcrumb, ok := hit.Fields["breadcrumb"].(string); ok {
			result.Breadcrumb = breadcrumb
		}
		result.Keys = stringList(hit.Fields["keys"])
		result.Keywords = stringList(hit.Fields["keywords"])
		if tokenCount, ok := hit.Fields["token_count"].(float64); ok {
			result.TokenCount = int(tokenCount)
		}
		results = append(results, result)
	}

	return nil, SearchConfigDocsOutput{
		Results:    results,
		Query:      input.Query,
		TotalHits:  int(searchResults.Total),
		SourceURLs: []string{t.validator.Links().BaseURL},
	}, nil
}

// stringList reads a stored array field. Bleve returns a single-element
// array as a bare string.
func stringList(v any) []string {
	switch vals := v.(type) {
	case string:
		return []string{vals}
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// RefreshConfigDocs reloads the documentation index
func (t *Toolset) RefreshConfigDocs(ctx context.Context, req *mcp.CallToolRequest, input RefreshConfigDocsInput) (*mcp.CallToolResult, RefreshConfigDocsOutput, error) {
	output, err := t.refresh()
	if err != nil {
		return nil, RefreshConfigDocsOutput{}, fmt.Errorf("refresh failed: %w", err)
	}
	return nil, output, nil
}

func (t *Toolset) registerDocSearchTools(server *mcp.Server) int {
	// Initialize doc search synchronously
	if err := t.InitializeDocSearch(); err != nil {
		logging.Warn("documentation search initialization failed, retrying on first use", zap.Error(err))
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_config_docs",
			Description: "Full-text search over vercel.json field documentation. Returns matching fields with description, declared keys, an example and the documentation link.",
		},
		t.SearchConfigDocs,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "refresh_config_docs",
			Description: "Reload the documentation index from the configured index_path, or rebuild it in memory",
		},
		t.RefreshConfigDocs,
	)
	return 2
}
