// Package tools exposes the configuration validator and its documentation
// to MCP clients.
package tools

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vercel/config-mcp-server/internal/config"
	"github.com/vercel/config-mcp-server/internal/metrics"
	"github.com/vercel/config-mcp-server/validator"
)

// Toolset holds the state shared by every tool handler.
type Toolset struct {
	validator *validator.Validator
	settings  *config.Settings
	metrics   *metrics.Collector
	docs      *indexHolder

	// cache maps a content hash to its result; nil when disabled
	cache *lru.Cache[uint64, ValidationResult]
}

// New creates a Toolset. A nil settings uses the defaults and a nil
// collector disables metrics.
func New(v *validator.Validator, settings *config.Settings, m *metrics.Collector) *Toolset {
	if settings == nil {
		settings = config.Defaults()
	}
	t := &Toolset{
		validator: v,
		settings:  settings,
		metrics:   m,
		docs:      &indexHolder{},
	}
	if settings.CacheSize > 0 {
		// lru.New only fails for a non-positive size
		t.cache, _ = lru.New[uint64, ValidationResult](settings.CacheSize)
	}
	return t
}

// Register adds every tool to server and returns the number registered.
func (t *Toolset) Register(server *mcp.Server) int {
	count := 0
	count += t.registerValidationTools(server)
	count += t.registerFeatureTools(server)
	count += t.registerGenerationTools(server)
	count += t.registerDocSearchTools(server)
	return count
}

// Close releases the documentation index.
func (t *Toolset) Close() error {
	return t.docs.close()
}
