package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vercel/config-mcp-server/internal/features"
	"github.com/vercel/config-mcp-server/internal/schema"
	"github.com/vercel/config-mcp-server/validator"
)

// fileResult is the outcome of checking one file
type fileResult struct {
	File    string `json:"file"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Link    string `json:"link,omitempty"`
	Code    string `json:"code,omitempty"`
	// Warnings do not make a file invalid
	Warnings []string `json:"warnings,omitempty"`
}

func newCheckCmd(a *app) *cobra.Command {
	var format, root string
	var strictCron bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate configuration files",
		Long: `Validate one or more vercel.json files. The exit code is 1 when any
file is invalid or unreadable.

Examples:
  # Check a single file
  vclint check vercel.json

  # JSON output for CI/CD
  vclint check --format json vercel.json apps/*/vercel.json

  # Also warn about functions patterns that match no file under .
  vclint check --root . vercel.json

  # Also reject cron schedules that do not parse
  vclint check --strict-cron vercel.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format: %s (want text or json)", format)
			}
			v := a.validator
			if strictCron {
				var err error
				v, err = validator.New(validator.WithFileName(a.settings.FileName), validator.WithStrictCron())
				if err != nil {
					return err
				}
			}
			results, err := checkFiles(cmd.Context(), v, root, args)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), format, results)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&root, "root", "", "project directory to match functions patterns against")
	cmd.Flags().BoolVar(&strictCron, "strict-cron", false, "reject cron schedules that do not parse as five-field expressions")
	return cmd
}

// checkFiles validates paths concurrently, keeping results in argument order.
func checkFiles(ctx context.Context, v *validator.Validator, root string, paths []string) ([]fileResult, error) {
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(v, path)
			if root != "" && results[i].Valid {
				warnings, err := patternWarnings(os.DirFS(root), path)
				if err != nil {
					return err
				}
				results[i].Warnings = warnings
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// patternWarnings reports functions patterns in the file at path that match
// nothing in fsys.
func patternWarnings(fsys fs.FS, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	config, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	unmatched, err := features.UnmatchedPatterns(fsys, features.FunctionPatterns(config))
	if err != nil {
		return nil, err
	}
	warnings := make([]string, 0, len(unmatched))
	for _, p := range unmatched {
		warnings = append(warnings, fmt.Sprintf("The pattern %q defined in `functions` doesn't match any files.", p))
	}
	return warnings, nil
}

func checkFile(v *validator.Validator, path string) fileResult {
	result := fileResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Message = fmt.Sprintf("failed to read file: %v", err)
		result.Code = "FILE_READ_ERROR"
		return result
	}

	verr, err := v.ValidateJSON(data)
	if err != nil {
		result.Message = fmt.Sprintf("Invalid JSON: %v", err)
		result.Code = "INVALID_JSON"
		return result
	}
	if verr != nil {
		result.Message = verr.Message
		result.Link = verr.Link
		result.Code = verr.Code
		return result
	}

	result.Valid = true
	return result
}

func report(w io.Writer, format string, results []fileResult) error {
	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, r := range results {
			printResult(w, r)
		}
	}

	if invalid > 0 {
		return errInvalid
	}
	return nil
}

func printResult(w io.Writer, r fileResult) {
	if r.Valid {
		fmt.Fprintf(w, "✓ %s\n", r.File)
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
		return
	}
	fmt.Fprintf(w, "✗ %s\n  %s\n", r.File, r.Message)
	if r.Link != "" {
		fmt.Fprintf(w, "  %s\n", r.Link)
	}
}
