package validator

import (
	"testing"

	"github.com/vercel/config-mcp-server/internal/crossfield"
	"github.com/vercel/config-mcp-server/internal/failure"
)

func TestDescribe(t *testing.T) {
	item := failure.NewPath("rewrites", failure.Index(0))
	fn := failure.NewPath("functions", failure.Key("api/test.js"), failure.Key("memory"))

	tests := []struct {
		name string
		f    failure.Failure
		want string
	}{
		{"wrong type", failure.Failure{Kind: failure.WrongType, Path: failure.NewPath("routes"), Types: []string{"array"}}, "`routes` should be array."},
		// several allowed types are comma joined, as the platform CLI prints them
		{"wrong type several", failure.Failure{Kind: failure.WrongType, Path: failure.NewPath("framework"), Types: []string{"string", "null"}}, "`framework` should be string,null."},
		{"missing", failure.Failure{Kind: failure.MissingProperty, Path: item, Property: "source"}, "`rewrites[0]` missing required property `source`."},
		{"additional", failure.Failure{Kind: failure.AdditionalProperty, Path: item, Property: "stuff"}, "`rewrites[0]` should NOT have additional property `stuff`. Please remove it."},
		{"additional suggested", failure.Failure{Kind: failure.AdditionalProperty, Path: item, Property: "src", Suggestion: "source"}, "`rewrites[0]` should NOT have additional property `src`. Did you mean `source`?"},
		{"too many items", failure.Failure{Kind: failure.TooManyItems, Path: failure.NewPath("redirects"), Limit: "2048"}, "`redirects` should NOT have more than 2048 items."},
		{"too few items", failure.Failure{Kind: failure.TooFewItems, Path: failure.NewPath("regions"), Limit: "1"}, "`regions` should NOT have fewer than 1 items."},
		{"too many properties", failure.Failure{Kind: failure.TooManyProperties, Path: failure.NewPath("functions"), Limit: "50"}, "`functions` should NOT have more than 50 properties."},
		{"too few properties", failure.Failure{Kind: failure.TooFewProperties, Path: failure.NewPath("routes", failure.Index(0), failure.Key("locale")), Limit: "1"}, "`routes[0].locale` should NOT have fewer than 1 properties."},
		{"too long", failure.Failure{Kind: failure.TooLong, Path: failure.NewPath("crons", failure.Index(0), failure.Key("path")), Limit: "512"}, "`crons[0].path` should NOT be longer than 512 characters."},
		{"too short", failure.Failure{Kind: failure.TooShort, Path: failure.NewPath("crons", failure.Index(0), failure.Key("schedule")), Limit: "9"}, "`crons[0].schedule` should NOT be shorter than 9 characters."},
		{"minimum", failure.Failure{Kind: failure.BelowMinimum, Path: fn, Operator: failure.AtLeast, Limit: "128"}, "`functions['api/test.js'].memory` should be >= 128."},
		{"maximum", failure.Failure{Kind: failure.AboveMaximum, Path: fn, Operator: failure.AtMost, Limit: "10240"}, "`functions['api/test.js'].memory` should be <= 10240."},
		{"exclusive minimum", failure.Failure{Kind: failure.BelowMinimum, Path: fn, Operator: failure.GreaterThan, Limit: "0"}, "`functions['api/test.js'].memory` should be > 0."},
		{"exclusive maximum", failure.Failure{Kind: failure.AboveMaximum, Path: fn, Operator: failure.LessThan, Limit: "2.5"}, "`functions['api/test.js'].memory` should be < 2.5."},
		{"multiple of", failure.Failure{Kind: failure.NotMultipleOf, Path: fn, Limit: "64"}, "`functions['api/test.js'].memory` should be multiple of 64."},
		{"pattern", failure.Failure{Kind: failure.PatternMismatch, Path: failure.NewPath("crons", failure.Index(0), failure.Key("path")), Pattern: `^/\d+`}, "`crons[0].path` should match pattern \"^/\\d+\"."},
		{"enum", failure.Failure{Kind: failure.NotAllowedValue, Path: failure.NewPath("x")}, "`x` should be equal to one of the allowed values."},
		{"const", failure.Failure{Kind: failure.NotConstant, Path: failure.NewPath("x")}, "`x` should be equal to constant."},
		{"no branch", failure.Failure{Kind: failure.NoBranchMatched, Path: item}, "`rewrites[0]` should match some schema in anyOf."},
		{"several branches", failure.Failure{Kind: failure.MultipleBranchesMatched, Path: item}, "`rewrites[0]` should match exactly one schema in oneOf."},
		{"other", failure.Failure{Kind: failure.Other, Path: item, Message: "should not be valid"}, "`rewrites[0]` should not be valid."},
		{"other without text", failure.Failure{Kind: failure.Other, Path: item}, "`rewrites[0]` is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.f); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinkTable(t *testing.T) {
	links := DefaultLinks()

	tests := []struct {
		field string
		want  string
	}{
		{"rewrites", DefaultDocsURL + "#rewrites"},
		{"cleanUrls", DefaultDocsURL + "#cleanurls"},
		{"trailingSlash", DefaultDocsURL + "#trailingslash"},
	}
	for _, tt := range tests {
		if got := links.Field(tt.field); got != tt.want {
			t.Errorf("Field(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}

	v := &crossfield.Violation{Code: crossfield.CodeFunctionsAndBuilds}
	if got := links.Violation(v); got != "https://vercel.link/functions-and-builds" {
		t.Errorf("Violation() = %q", got)
	}

	v = &crossfield.Violation{Code: crossfield.CodeInvalidCronSchedule, Field: "crons"}
	if got := links.Violation(v); got != DefaultDocsURL+"#crons" {
		t.Errorf("Violation() = %q", got)
	}
}
