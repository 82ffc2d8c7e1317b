package schema

import (
	"sort"
	"strings"
)

// Keys returns every property name declared anywhere under the field,
// following local references. The result is sorted and deduplicated.
func (c *Catalog) Keys(f *Field) []string {
	seen := map[string]bool{}
	visited := map[string]bool{}
	c.collectKeys(f.node, seen, visited)

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) collectKeys(node any, seen, visited map[string]bool) {
	switch n := node.(type) {
	case map[string]any:
		if ref, ok := n["$ref"].(string); ok && strings.HasPrefix(ref, "#") {
			if visited[ref] {
				return
			}
			visited[ref] = true
			c.collectKeys(resolvePointer(c.doc, strings.TrimPrefix(ref, "#")), seen, visited)
		}
		if props, ok := n["properties"].(map[string]any); ok {
			for k, v := range props {
				seen[k] = true
				c.collectKeys(v, seen, visited)
			}
		}
		// patternProperties maps a pattern to a schema; the patterns are not keys.
		if patterns, ok := n["patternProperties"].(map[string]any); ok {
			for _, v := range patterns {
				c.collectKeys(v, seen, visited)
			}
		}
		for _, kw := range []string{"items", "additionalProperties", "anyOf", "oneOf", "allOf"} {
			if child, ok := n[kw]; ok {
				c.collectKeys(child, seen, visited)
			}
		}
	case []any:
		for _, item := range n {
			c.collectKeys(item, seen, visited)
		}
	}
}
