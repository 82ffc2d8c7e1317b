package schema

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// resolvePointer walks a JSON pointer ("/a/b/0") through a decoded document.
// Tokens may be percent-encoded, as they are in schema locations.
func resolvePointer(doc any, ptr string) any {
	if ptr == "" || ptr == "/" {
		return doc
	}
	node := doc
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		if unescaped, err := url.PathUnescape(tok); err == nil {
			tok = unescaped
		}
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")

		switch n := node.(type) {
		case map[string]any:
			node = n[tok]
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

// schemaNode resolves a schema location such as
// "https://openapi.vercel.sh/vercel.json#/definitions/route" against the
// catalog document.
func (c *Catalog) schemaNode(location string) map[string]any {
	base, frag, _ := strings.Cut(location, "#")
	if base != c.url {
		return nil
	}
	node, _ := resolvePointer(c.doc, frag).(map[string]any)
	return node
}

// declaredProperties lists the keys an object schema declares, sorted.
func declaredProperties(node map[string]any) []string {
	props, _ := node["properties"].(map[string]any)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// requiredPosition is the index of name in the schema's required list.
func requiredPosition(node map[string]any, name string) int {
	req, _ := node["required"].([]any)
	for i, r := range req {
		if r == name {
			return i
		}
	}
	return len(req)
}
