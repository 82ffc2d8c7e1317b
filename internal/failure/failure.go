// Package failure models raw structural validation failures and picks the
// single most relevant one out of a validation pass.
package failure

// Kind tags a Failure with the schema keyword family that rejected the value.
// The declaration order is significant: within one priority group, earlier
// kinds win ties.
type Kind int

const (
	WrongType Kind = iota
	MissingProperty
	AdditionalProperty
	TooManyItems
	TooFewItems
	TooManyProperties
	TooFewProperties
	TooLong
	TooShort
	AboveMaximum
	BelowMinimum
	NotMultipleOf
	PatternMismatch
	NotAllowedValue
	NotConstant
	NoBranchMatched
	MultipleBranchesMatched
	Other
)

var kindNames = [...]string{
	WrongType:               "wrong-type",
	MissingProperty:         "missing-required-property",
	AdditionalProperty:      "disallowed-additional-property",
	TooManyItems:            "array-too-long",
	TooFewItems:             "array-too-short",
	TooManyProperties:       "object-too-many-properties",
	TooFewProperties:        "object-too-few-properties",
	TooLong:                 "value-too-long",
	TooShort:                "value-too-short",
	AboveMaximum:            "value-above-maximum",
	BelowMinimum:            "value-below-minimum",
	NotMultipleOf:           "not-multiple-of",
	PatternMismatch:         "pattern-mismatch",
	NotAllowedValue:         "not-one-of-allowed-values",
	NotConstant:             "not-equal-to-constant",
	NoBranchMatched:         "failed-all-alternative-branches",
	MultipleBranchesMatched: "multiple-branches-matched",
	Other:                   "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Priority returns the selection group of the kind; lower is reported first.
func (k Kind) Priority() int {
	switch k {
	case AdditionalProperty:
		return 1
	case MissingProperty:
		return 2
	case WrongType:
		return 3
	case TooManyItems, TooFewItems, TooManyProperties, TooFewProperties,
		TooLong, TooShort, AboveMaximum, BelowMinimum, NotMultipleOf, PatternMismatch:
		return 4
	case NotAllowedValue, NotConstant:
		return 5
	default:
		return 6
	}
}

// Operator is the comparison a bound failure asked for.
type Operator string

const (
	AtLeast     Operator = ">="
	AtMost      Operator = "<="
	GreaterThan Operator = ">"
	LessThan    Operator = "<"
)

// Failure is one candidate violation produced by a validation pass. Only the
// fields relevant to Kind are populated.
type Failure struct {
	Kind Kind
	Path Path

	// Branch holds the alternative index chosen at every branch group the
	// failure was found under, outermost first.
	Branch []int

	// Property is the missing or rejected key name.
	Property string
	// Allowed lists the keys the rejecting object schema declares.
	Allowed []string
	// Types lists the accepted type names for WrongType.
	Types []string

	Operator Operator
	// Limit is the rendered bound for bound, length, item and property
	// count failures.
	Limit string
	Pattern string
	Values  []any

	// Message carries the validator's own text for Other.
	Message string

	// Suggestion is a replacement name for an AdditionalProperty failure.
	Suggestion string
	// Rank orders siblings of the same kind at the same location: position
	// in the required list, or in the suggestion vocabulary.
	Rank int

	// Causes holds the per-branch failures of a NoBranchMatched failure.
	Causes []Failure
}

// Field returns the top-level configuration field the failure belongs to.
func (f Failure) Field() string {
	return f.Path.Field()
}
