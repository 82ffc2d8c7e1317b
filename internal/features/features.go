package features

import (
	"slices"
	"strings"
)

// Paradigm names the routing style a configuration uses.
type Paradigm string

const (
	// ParadigmLegacy uses builds and routes
	ParadigmLegacy Paradigm = "legacy"
	// ParadigmManaged uses rewrites, redirects, headers, cleanUrls and trailingSlash
	ParadigmManaged Paradigm = "managed"
	// ParadigmMixed combines both, which the platform rejects for routes
	ParadigmMixed Paradigm = "mixed"
	// ParadigmEmpty has no routing fields
	ParadigmEmpty Paradigm = "empty"
)

// LegacyFields are the top-level keys of the legacy routing style
var LegacyFields = []string{"builds", "routes"}

// ManagedFields are the top-level keys of the managed routing style
var ManagedFields = []string{"rewrites", "redirects", "headers", "cleanUrls", "trailingSlash"}

// Summary describes which parts of a configuration are in use
type Summary struct {
	Fields   []string       `json:"fields"`            // Known fields present, in catalog order
	Unknown  []string       `json:"unknown,omitempty"` // Top-level keys outside the catalog, sorted
	Counts   map[string]int `json:"counts,omitempty"`  // Entries per array or object field
	Paradigm Paradigm       `json:"paradigm"`
}

// Describe summarizes config against the known field names.
func Describe(config map[string]any, known []string) Summary {
	summary := Summary{
		Fields: []string{},
		Counts: make(map[string]int),
	}
	for _, name := range known {
		value, ok := config[name]
		if !ok {
			continue
		}
		summary.Fields = append(summary.Fields, name)
		switch v := value.(type) {
		case []any:
			summary.Counts[name] = len(v)
		case map[string]any:
			summary.Counts[name] = len(v)
		}
	}
	for key := range config {
		if !slices.Contains(known, key) {
			summary.Unknown = append(summary.Unknown, key)
		}
	}
	slices.Sort(summary.Unknown)
	summary.Paradigm = DetectParadigm(config)
	return summary
}

// DetectParadigm reports the routing style of config
func DetectParadigm(config map[string]any) Paradigm {
	legacy := hasAny(config, LegacyFields)
	managed := hasAny(config, ManagedFields)
	switch {
	case legacy && managed:
		return ParadigmMixed
	case legacy:
		return ParadigmLegacy
	case managed:
		return ParadigmManaged
	}
	return ParadigmEmpty
}

func hasAny(config map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := config[k]; ok {
			return true
		}
	}
	return false
}

// FindDestinations extracts every destination or dest string in a
// configuration, deduplicated and sorted.
func FindDestinations(data any) []string {
	seen := make(map[string]struct{})
	collectDestinations(data, seen)

	dests := make([]string, 0, len(seen))
	for d := range seen {
		dests = append(dests, d)
	}
	slices.Sort(dests)
	return dests
}

// collectDestinations recursively collects destinations into a map for deduplication
func collectDestinations(data any, seen map[string]struct{}) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			if s, ok := value.(string); ok && (key == "destination" || key == "dest") && strings.TrimSpace(s) != "" {
				seen[s] = struct{}{}
			}
			collectDestinations(value, seen)
		}
	case []any:
		for _, item := range v {
			collectDestinations(item, seen)
		}
	}
}
