package failure

import (
	"cmp"
	"slices"
)

// Select picks the representative failure of one validation pass. Branch
// group failures are opened up and their inner failures compete with the
// rest; a branch group with nothing inside is a candidate itself. It reports
// false only for an empty input.
func Select(failures []Failure) (Failure, bool) {
	leaves := Flatten(failures)
	if len(leaves) == 0 {
		return Failure{}, false
	}
	return slices.MinFunc(leaves, Compare), true
}

// Flatten replaces every NoBranchMatched failure that has causes with those
// causes, recursively.
func Flatten(failures []Failure) []Failure {
	var out []Failure
	for _, f := range failures {
		if f.Kind == NoBranchMatched && len(f.Causes) > 0 {
			out = append(out, Flatten(f.Causes)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// Compare orders failures by how useful they are to report: priority group,
// then shallowest path, then first-declared branch, then keyword order, then
// sibling rank. It is a total order, so the outcome never depends on the
// order the validator produced the failures in.
func Compare(a, b Failure) int {
	if c := cmp.Compare(a.Kind.Priority(), b.Kind.Priority()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Path.Depth(), b.Path.Depth()); c != 0 {
		return c
	}
	if c := slices.Compare(a.Branch, b.Branch); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := compareSuggested(a, b); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Property, b.Property); c != 0 {
		return c
	}
	return cmp.Compare(a.Path.Render(), b.Path.Render())
}

func compareSuggested(a, b Failure) int {
	as, bs := a.Suggestion != "", b.Suggestion != ""
	switch {
	case as == bs:
		return 0
	case as:
		return -1
	default:
		return 1
	}
}
