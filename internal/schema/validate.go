package schema

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vercel/config-mcp-server/internal/failure"
)

var printer = message.NewPrinter(language.English)

// Validate checks value, the normalized value of the named top-level field,
// and returns every failure found. An unknown field or a valid value yields
// nil.
func (c *Catalog) Validate(field string, value any) []failure.Failure {
	f, ok := c.byName[field]
	if !ok {
		return nil
	}

	err := f.schema.Validate(value)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []failure.Failure{{
			Kind:    failure.Other,
			Path:    failure.NewPath(field),
			Message: err.Error(),
		}}
	}

	t := translator{catalog: c, field: field, root: value}
	return t.translate(verr, nil)
}

// translator turns one field's jsonschema error tree into failures.
type translator struct {
	catalog *Catalog
	field   string
	root    any
}

func (t *translator) translate(verr *jsonschema.ValidationError, branch []int) []failure.Failure {
	path := t.path(verr.InstanceLocation)
	base := failure.Failure{Path: path, Branch: branch}

	switch k := verr.ErrorKind.(type) {
	case *kind.Type:
		base.Kind = failure.WrongType
		base.Types = k.Want
		return []failure.Failure{base}

	case *kind.Required:
		node := t.catalog.schemaNode(verr.SchemaURL)
		out := make([]failure.Failure, 0, len(k.Missing))
		for i, name := range k.Missing {
			f := base
			f.Kind = failure.MissingProperty
			f.Property = name
			f.Rank = i
			if node != nil {
				f.Rank = requiredPosition(node, name)
			}
			out = append(out, f)
		}
		return out

	case *kind.AdditionalProperties:
		allowed := declaredProperties(t.catalog.schemaNode(verr.SchemaURL))
		out := make([]failure.Failure, 0, len(k.Properties))
		for _, name := range k.Properties {
			f := base
			f.Kind = failure.AdditionalProperty
			f.Property = name
			f.Allowed = allowed
			out = append(out, f)
		}
		return out

	case *kind.MaxItems:
		return bound(base, failure.TooManyItems, "", strconv.Itoa(k.Want))
	case *kind.MinItems:
		return bound(base, failure.TooFewItems, "", strconv.Itoa(k.Want))
	case *kind.MaxProperties:
		return bound(base, failure.TooManyProperties, "", strconv.Itoa(k.Want))
	case *kind.MinProperties:
		return bound(base, failure.TooFewProperties, "", strconv.Itoa(k.Want))
	case *kind.MaxLength:
		return bound(base, failure.TooLong, "", strconv.Itoa(k.Want))
	case *kind.MinLength:
		return bound(base, failure.TooShort, "", strconv.Itoa(k.Want))
	case *kind.Maximum:
		return bound(base, failure.AboveMaximum, failure.AtMost, formatRat(k.Want))
	case *kind.ExclusiveMaximum:
		return bound(base, failure.AboveMaximum, failure.LessThan, formatRat(k.Want))
	case *kind.Minimum:
		return bound(base, failure.BelowMinimum, failure.AtLeast, formatRat(k.Want))
	case *kind.ExclusiveMinimum:
		return bound(base, failure.BelowMinimum, failure.GreaterThan, formatRat(k.Want))
	case *kind.MultipleOf:
		return bound(base, failure.NotMultipleOf, "", formatRat(k.Want))

	case *kind.Pattern:
		base.Kind = failure.PatternMismatch
		base.Pattern = k.Want
		return []failure.Failure{base}

	case *kind.Enum:
		base.Kind = failure.NotAllowedValue
		base.Values = k.Want
		return []failure.Failure{base}

	case *kind.Const:
		base.Kind = failure.NotConstant
		base.Values = []any{k.Want}
		return []failure.Failure{base}

	case *kind.AnyOf:
		return []failure.Failure{t.group(base, verr)}

	case *kind.OneOf:
		if len(k.Subschemas) > 1 {
			base.Kind = failure.MultipleBranchesMatched
			return []failure.Failure{base}
		}
		return []failure.Failure{t.group(base, verr)}

	default:
		if len(verr.Causes) == 0 {
			base.Kind = failure.Other
			base.Message = strings.TrimSuffix(verr.ErrorKind.LocalizedString(printer), ".")
			return []failure.Failure{base}
		}
		var out []failure.Failure
		for _, cause := range verr.Causes {
			out = append(out, t.translate(cause, branch)...)
		}
		return out
	}
}

// group collects the failures of every alternative under one
// NoBranchMatched failure. Causes arrive one per branch in declared order.
func (t *translator) group(base failure.Failure, verr *jsonschema.ValidationError) failure.Failure {
	base.Kind = failure.NoBranchMatched
	for i, cause := range verr.Causes {
		branch := make([]int, 0, len(base.Branch)+1)
		branch = append(branch, base.Branch...)
		branch = append(branch, i)
		base.Causes = append(base.Causes, t.translate(cause, branch)...)
	}
	return base
}

func bound(base failure.Failure, k failure.Kind, op failure.Operator, limit string) []failure.Failure {
	base.Kind = k
	base.Operator = op
	base.Limit = limit
	return []failure.Failure{base}
}

// path rebuilds the typed location of an instance. The validator reports
// every step as a string, so array indices are recovered by walking the
// value itself.
func (t *translator) path(location []string) failure.Path {
	p := failure.NewPath(t.field)
	node := t.root
	for _, tok := range location {
		switch n := node.(type) {
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil {
				p = append(p, failure.Key(tok))
				node = nil
				continue
			}
			p = append(p, failure.Index(i))
			if i >= 0 && i < len(n) {
				node = n[i]
			} else {
				node = nil
			}
		case map[string]any:
			p = append(p, failure.Key(tok))
			node = n[tok]
		default:
			p = append(p, failure.Key(tok))
			node = nil
		}
	}
	return p
}

func formatRat(r *big.Rat) string {
	if r == nil {
		return ""
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String renders a failure list for debugging.
func String(failures []failure.Failure) string {
	var b strings.Builder
	for _, f := range failure.Flatten(failures) {
		fmt.Fprintf(&b, "%s %s %s\n", f.Path.Render(), f.Kind, f.Property)
	}
	return b.String()
}
