package tools

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/blevesearch/bleve/v2/search"
)

// --- indexHolder tests ---
// These tests verify the thread-safe atomic pointer swap implementation
// using mocks (no filesystem, no external dependencies)

func TestIndexHolderConcurrentReads(t *testing.T) {
	holder := &indexHolder{}
	holder.swap(newMockIndex(1))

	const numReaders = 50
	errChan := make(chan error, numReaders)
	doneChan := make(chan bool, numReaders)

	for i := 0; i < numReaders; i++ {
		go func(id int) {
			defer func() { doneChan <- true }()

			index, release := holder.acquire()
			defer release()
			if index == nil {
				errChan <- fmt.Errorf("goroutine %d: got nil index", id)
				return
			}

			count, err := index.DocCount()
			if err != nil {
				errChan <- fmt.Errorf("goroutine %d: DocCount failed: %v", id, err)
				return
			}
			if count != 100 { // Mock returns 100
				errChan <- fmt.Errorf("goroutine %d: expected 100, got %d", id, count)
			}
		}(i)
	}

	for i := 0; i < numReaders; i++ {
		<-doneChan
	}
	close(errChan)

	for err := range errChan {
		t.Error(err)
	}

	// Verify WaitGroup drained
	holder.wg.Wait()
}

func TestIndexHolderSwapClosesOld(t *testing.T) {
	mock1 := newMockIndex(1)
	mock2 := newMockIndex(2)

	holder := &indexHolder{}
	<-holder.swap(mock1)

	done := holder.swap(mock2)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("old index was not closed")
	}

	if !mock1.IsClosed() {
		t.Error("expected old index closed after swap")
	}
	if mock2.IsClosed() {
		t.Error("new index should stay open")
	}

	index, release := holder.acquire()
	defer release()
	if index != Index(mock2) {
		t.Error("expected mock2 to be current")
	}
}

func TestIndexHolderSwapWaitsForSearches(t *testing.T) {
	mock1 := newMockIndex(1)
	holder := &indexHolder{}
	holder.swap(mock1)

	_, release := holder.acquire()
	done := holder.swap(newMockIndex(2))

	select {
	case <-done:
		t.Fatal("old index closed while a search was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("old index was not closed after the search finished")
	}
	if !mock1.IsClosed() {
		t.Error("expected old index closed")
	}
}

func TestIndexHolderAcquireEmpty(t *testing.T) {
	holder := &indexHolder{}
	index, release := holder.acquire()
	release()
	if index != nil {
		t.Error("expected nil index from empty holder")
	}
	holder.wg.Wait()
}

func TestIndexHolderClose(t *testing.T) {
	mock := newMockIndex(1)
	mock.closeError = errors.New("boom")

	holder := &indexHolder{}
	holder.swap(mock)

	if err := holder.close(); err == nil {
		t.Error("expected close error to propagate")
	}
	if !mock.IsClosed() {
		t.Error("expected index closed")
	}
	if err := holder.close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestIndexHolderConcurrentSwapAndRead(t *testing.T) {
	holder := &indexHolder{}
	holder.swap(newMockIndex(0))

	errChan := make(chan error, 100)
	doneChan := make(chan bool, 100)

	const numReaders = 20
	const iterations = 5

	for i := 0; i < numReaders; i++ {
		go func(id int) {
			defer func() { doneChan <- true }()

			for j := 0; j < iterations; j++ {
				index, release := holder.acquire()
				if index == nil {
					release()
					errChan <- fmt.Errorf("reader %d iteration %d: got nil", id, j)
					return
				}
				_, err := index.DocCount()
				release()

				if err != nil {
					errChan <- fmt.Errorf("reader %d iteration %d: %v", id, j, err)
					return
				}
			}
		}(i)
	}

	// Swap without cleanup: closing old indexes here would race readers'
	// Add against the cleanup Wait
	go func() {
		defer func() { doneChan <- true }()
		for i := 0; i < 3; i++ {
			next := Index(newMockIndex(i + 1))
			holder.current.Swap(&next)
		}
	}()

	for i := 0; i < numReaders+1; i++ {
		<-doneChan
	}
	close(errChan)

	for err := range errChan {
		t.Error(err)
	}
}

// --- search tests ---

func TestSearchConfigDocs(t *testing.T) {
	ts, registry := newTestToolset(t)

	_, out, err := ts.SearchConfigDocs(context.Background(), nil, SearchConfigDocsInput{Query: "crons"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if out.TotalHits == 0 || len(out.Results) == 0 {
		t.Fatal("expected hits for crons")
	}
	first := out.Results[0]
	if first.Field != "crons" {
		t.Errorf("expected crons first, got %q", first.Field)
	}
	if first.URL == "" || first.Example == "" || len(first.Keys) == 0 {
		t.Errorf("expected stored fields on hit, got %+v", first)
	}
	if len(out.SourceURLs) != 1 {
		t.Errorf("unexpected source urls %v", out.SourceURLs)
	}
	if got := counterValue(t, registry, "vercel_config_doc_searches_total", nil); got != 1 {
		t.Errorf("expected 1 search recorded, got %v", got)
	}
}

func TestSearchConfigDocsEmptyQuery(t *testing.T) {
	ts, _ := newTestToolset(t)

	if _, _, err := ts.SearchConfigDocs(context.Background(), nil, SearchConfigDocsInput{Query: "  "}); err == nil {
		t.Error("expected an error for an empty query")
	}
}

func TestSearchConfigDocsInitializesLazily(t *testing.T) {
	ts, _ := newTestToolset(t)

	if index, release := ts.docs.acquire(); index != nil {
		release()
		t.Fatal("expected no index before first use")
	}
	if _, _, err := ts.SearchConfigDocs(context.Background(), nil, SearchConfigDocsInput{Query: "redirects"}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	index, release := ts.docs.acquire()
	defer release()
	if index == nil {
		t.Error("expected an index after first search")
	}
}

func TestSearchConfigDocsSearchError(t *testing.T) {
	ts, _ := newTestToolset(t)
	mock := newMockIndex(1)
	mock.searchError = errors.New("broken")
	ts.docs.swap(mock)

	if _, _, err := ts.SearchConfigDocs(context.Background(), nil, SearchConfigDocsInput{Query: "x"}); err == nil {
		t.Error("expected search error to propagate")
	}
}

func TestResultLimit(t *testing.T) {
	ts, _ := newTestToolset(t)

	tests := []struct {
		requested int
		want      int
	}{
		{0, 10},
		{-1, 10},
		{5, 5},
		{20, 20},
		{50, 20},
	}
	for _, tt := range tests {
		if got := ts.resultLimit(tt.requested); got != tt.want {
			t.Errorf("resultLimit(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestStringList(t *testing.T) {
	if got := stringList("one"); len(got) != 1 || got[0] != "one" {
		t.Errorf("unexpected %v", got)
	}
	if got := stringList([]interface{}{"a", 1, "b"}); len(got) != 2 {
		t.Errorf("unexpected %v", got)
	}
	if got := stringList(nil); got != nil {
		t.Errorf("unexpected %v", got)
	}
}

func TestRefreshFromDisk(t *testing.T) {
	ts, _ := newTestToolset(t)
	dir, want := buildPrebuilt(t, ts)

	ts.settings.IndexPath = dir
	_, out, err := ts.RefreshConfigDocs(context.Background(), nil, RefreshConfigDocsInput{})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if out.Source != "disk" || out.DocsIndexed != want {
		t.Errorf("unexpected refresh output %+v", out)
	}
}

func TestRefreshFallsBackToMemory(t *testing.T) {
	ts, _ := newTestToolset(t)
	ts.settings.IndexPath = filepath.Join(t.TempDir(), "missing")

	_, out, err := ts.RefreshConfigDocs(context.Background(), nil, RefreshConfigDocsInput{})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if out.Source != "memory" || out.DocsIndexed == 0 {
		t.Errorf("unexpected refresh output %+v", out)
	}
}

func TestSearchConfigDocsHitConversion(t *testing.T) {
	ts, _ := newTestToolset(t)

	mock := newMockIndex(1)
	for i := 0; i < 30; i++ {
		mock.hits = append(mock.hits, &search.DocumentMatch{
			ID:    fmt.Sprintf("field_%d", i),
			Score: float64(30 - i),
			Fields: map[string]interface{}{
				"field":       "functions",
				"description": "Per-function settings.",
				"keys":        "memory",
				"keywords":    []interface{}{"functions", "memory"},
				"token_count": float64(12),
			},
		})
	}
	ts.docs.swap(mock)

	_, out, err := ts.SearchConfigDocs(context.Background(), nil, SearchConfigDocsInput{Query: "memory", MaxResults: 50})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out.Results) != 20 {
		t.Errorf("expected results capped at 20, got %d", len(out.Results))
	}
	if out.TotalHits != 30 {
		t.Errorf("expected 30 total hits, got %d", out.TotalHits)
	}
	first := out.Results[0]
	if first.Field != "functions" || first.TokenCount != 12 || first.Score != 30 {
		t.Errorf("unexpected hit %+v", first)
	}
	if len(first.Keys) != 1 || first.Keys[0] != "memory" {
		t.Errorf("expected single key from bare string, got %v", first.Keys)
	}
	if len(first.Keywords) != 2 {
		t.Errorf("unexpected keywords %v", first.Keywords)
	}
	if mock.searches.Load() != 1 {
		t.Errorf("expected one search, got %d", mock.searches.Load())
	}
}
