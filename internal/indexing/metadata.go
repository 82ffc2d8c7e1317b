package indexing

import (
	"strings"
	"unicode"
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "as": true, "by": true, "is": true,
	"it": true, "be": true, "with": true, "from": true, "that": true,
	"each": true, "its": true, "when": true, "are": true, "not": true,
}

// EstimateTokens estimates the token count for a text string
func EstimateTokens(text string) int {
	return len(text) / CharsPerToken
}

// SplitIdentifier breaks a camelCase key into lower-case words.
// Example: "trailingSlash" -> ["trailing", "slash"]
func SplitIdentifier(name string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// ExtractKeywords extracts key terms from a field name and its description,
// in order of first appearance.
func ExtractKeywords(name, content string) []string {
	words := SplitIdentifier(name)

	preview := content
	if len(preview) > 200 {
		preview = preview[:200]
	}
	words = append(words, strings.Fields(strings.ToLower(preview))...)

	seen := make(map[string]bool)
	keywords := make([]string, 0, MaxKeywords)
	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
		})
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// CreateAnchor creates a URL anchor from text
// Example: "Clean URLs" -> "clean-urls"
func CreateAnchor(text string) string {
	anchor := strings.ToLower(strings.TrimSpace(text))
	anchor = strings.ReplaceAll(anchor, " ", "-")
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, anchor)
}

// EnrichMetadata fills breadcrumb, keywords and token count. The keys are
// part of the searchable text so a query for "maxDuration" finds functions.
func EnrichMetadata(doc *FieldDoc, fileName string) {
	doc.Breadcrumb = fileName + " > " + doc.Field

	text := doc.Description
	if len(doc.Keys) > 0 {
		text += " " + strings.Join(doc.Keys, " ")
	}
	doc.Keywords = ExtractKeywords(doc.Field, text)
	doc.TokenCount = EstimateTokens(text + doc.Example)
}
