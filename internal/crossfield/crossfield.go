// Package crossfield holds rules the structural schema cannot express: the
// consistency rules that span several top-level fields, and opt-in semantic
// checks of single values.
package crossfield

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vercel/config-mcp-server/internal/failure"
)

// Violation is a failed cross-field rule. Message is complete and is shown
// as is; Field names the top-level field whose documentation applies, or is
// empty when the rule has its own link.
type Violation struct {
	Code    string
	Field   string
	Message string
}

// Check inspects a structurally valid configuration.
type Check func(config map[string]any) *Violation

// Run applies checks in order and returns the first violation.
func Run(config map[string]any, checks ...Check) *Violation {
	for _, check := range checks {
		if v := check(config); v != nil {
			return v
		}
	}
	return nil
}

const (
	CodeFunctionsAndBuilds  = "FUNCTIONS_AND_BUILDS"
	CodeInvalidCronSchedule = "INVALID_CRON_SCHEDULE"
)

// FunctionsAndBuilds rejects configurations that mix the legacy builds
// declarations with managed function settings.
func FunctionsAndBuilds(config map[string]any) *Violation {
	_, hasFunctions := config["functions"]
	_, hasBuilds := config["builds"]
	if !hasFunctions || !hasBuilds {
		return nil
	}
	return &Violation{
		Code:    CodeFunctionsAndBuilds,
		Message: "The `functions` property cannot be used in conjunction with the `builds` property. Please remove one of them.",
	}
}

// NewCronSchedules returns a check that parses every cron schedule with the
// standard five-field parser. prefix is prepended to the message, like
// structural messages are.
func NewCronSchedules(prefix string) Check {
	return func(config map[string]any) *Violation {
		crons, _ := config["crons"].([]any)
		for i, c := range crons {
			entry, _ := c.(map[string]any)
			schedule, ok := entry["schedule"].(string)
			if !ok {
				continue
			}
			if _, err := cron.ParseStandard(schedule); err != nil {
				path := failure.NewPath("crons", failure.Index(i), failure.Key("schedule"))
				return &Violation{
					Code:    CodeInvalidCronSchedule,
					Field:   "crons",
					Message: fmt.Sprintf("%s`%s` is not a valid cron expression.", prefix, path.Render()),
				}
			}
		}
		return nil
	}
}
