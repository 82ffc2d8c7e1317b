// Package suggest proposes corrections for rejected property names that
// belong to a closely related schema's vocabulary.
package suggest

// Alias maps a key of the sibling schema to the local key with the same
// meaning.
type Alias struct {
	Sibling string
	Local   string
}

// Vocabulary describes the sibling of one configuration field: which field
// it is and how its key names translate.
type Vocabulary struct {
	Sibling string
	Aliases []Alias
}

// Match is a confident suggestion. Rank is the alias position in the
// vocabulary and orders competing suggestions at one location.
type Match struct {
	Name string
	Rank int
}

// Suggest reports the local name for offending when offending is exactly a
// key of the sibling vocabulary. When allowed is non-nil the suggestion must
// also be one of the allowed names, so a branch that does not declare the
// translated key never gets a hint pointing at it. No approximate matching
// is attempted.
func Suggest(offending string, allowed []string, vocab *Vocabulary) (Match, bool) {
	if vocab == nil {
		return Match{}, false
	}
	for i, a := range vocab.Aliases {
		if a.Sibling != offending {
			continue
		}
		if allowed != nil && !contains(allowed, a.Local) {
			return Match{}, false
		}
		return Match{Name: a.Local, Rank: i}, true
	}
	return Match{}, false
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// RouteRules is the vocabulary used by rewrites, redirects and headers: they
// share the rule shape of routes with different key names.
var RouteRules = Vocabulary{
	Sibling: "routes",
	Aliases: []Alias{
		{Sibling: "src", Local: "source"},
		{Sibling: "dest", Local: "destination"},
		{Sibling: "status", Local: "statusCode"},
	},
}

// RedirectRules is the vocabulary used by routes.
var RedirectRules = Vocabulary{
	Sibling: "redirects",
	Aliases: []Alias{
		{Sibling: "source", Local: "src"},
		{Sibling: "destination", Local: "dest"},
		{Sibling: "statusCode", Local: "status"},
	},
}
