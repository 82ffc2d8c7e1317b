package failure

import (
	"regexp"
	"strconv"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Step is one hop in a Path: either an object key or an array index.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a named-key step.
func Key(name string) Step {
	return Step{Key: name}
}

// Index returns an array-index step.
func Index(i int) Step {
	return Step{Index: i, IsIndex: true}
}

// Path locates a value inside a configuration document, starting at the
// top-level field.
type Path []Step

// NewPath builds a path rooted at a top-level field.
func NewPath(field string, steps ...Step) Path {
	p := make(Path, 0, len(steps)+1)
	p = append(p, Key(field))
	return append(p, steps...)
}

// Append returns a copy of p extended with steps. The receiver is never
// modified, so sibling failures can share a prefix safely.
func (p Path) Append(steps ...Step) Path {
	out := make(Path, 0, len(p)+len(steps))
	out = append(out, p...)
	return append(out, steps...)
}

// Field returns the top-level field name the path starts at.
func (p Path) Field() string {
	if len(p) == 0 || p[0].IsIndex {
		return ""
	}
	return p[0].Key
}

// Depth is the number of steps in the path.
func (p Path) Depth() int {
	return len(p)
}

// Render formats the path for display: `.name` for identifier keys, `[i]`
// for indices and `['key']` for everything else. The first step carries no
// leading dot.
func (p Path) Render() string {
	var b strings.Builder
	for i, s := range p {
		switch {
		case s.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		case identifierPattern.MatchString(s.Key):
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Key)
		default:
			b.WriteString("['")
			b.WriteString(quoteKey(s.Key))
			b.WriteString("']")
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return p.Render()
}

func quoteKey(key string) string {
	if !strings.ContainsAny(key, `'\`) {
		return key
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return r.Replace(key)
}
