package validator

import (
	"fmt"
	"strings"

	"github.com/vercel/config-mcp-server/internal/failure"
)

// describe renders the selected failure without the artifact prefix.
func describe(f failure.Failure) string {
	at := "`" + f.Path.Render() + "`"

	switch f.Kind {
	case failure.WrongType:
		return fmt.Sprintf("%s should be %s.", at, strings.Join(f.Types, ","))
	case failure.MissingProperty:
		return fmt.Sprintf("%s missing required property `%s`.", at, f.Property)
	case failure.AdditionalProperty:
		if f.Suggestion != "" {
			return fmt.Sprintf("%s should NOT have additional property `%s`. Did you mean `%s`?", at, f.Property, f.Suggestion)
		}
		return fmt.Sprintf("%s should NOT have additional property `%s`. Please remove it.", at, f.Property)
	case failure.TooManyItems:
		return fmt.Sprintf("%s should NOT have more than %s items.", at, f.Limit)
	case failure.TooFewItems:
		return fmt.Sprintf("%s should NOT have fewer than %s items.", at, f.Limit)
	case failure.TooManyProperties:
		return fmt.Sprintf("%s should NOT have more than %s properties.", at, f.Limit)
	case failure.TooFewProperties:
		return fmt.Sprintf("%s should NOT have fewer than %s properties.", at, f.Limit)
	case failure.TooLong:
		return fmt.Sprintf("%s should NOT be longer than %s characters.", at, f.Limit)
	case failure.TooShort:
		return fmt.Sprintf("%s should NOT be shorter than %s characters.", at, f.Limit)
	case failure.AboveMaximum, failure.BelowMinimum:
		return fmt.Sprintf("%s should be %s %s.", at, f.Operator, f.Limit)
	case failure.NotMultipleOf:
		return fmt.Sprintf("%s should be multiple of %s.", at, f.Limit)
	case failure.PatternMismatch:
		return fmt.Sprintf("%s should match pattern \"%s\".", at, f.Pattern)
	case failure.NotAllowedValue:
		return at + " should be equal to one of the allowed values."
	case failure.NotConstant:
		return at + " should be equal to constant."
	case failure.NoBranchMatched:
		return at + " should match some schema in anyOf."
	case failure.MultipleBranchesMatched:
		return at + " should match exactly one schema in oneOf."
	default:
		if f.Message == "" {
			return at + " is invalid."
		}
		return fmt.Sprintf("%s %s.", at, f.Message)
	}
}
