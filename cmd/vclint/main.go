// vclint validates vercel.json files from the command line.
//
// Usage:
//
//	# Check one or more files
//	vclint check vercel.json apps/web/vercel.json
//
//	# JSON output for CI
//	vclint check --format json vercel.json
//
//	# Re-validate on every save
//	vclint watch vercel.json
//
//	# Build a documentation index for the MCP server's index_path
//	vclint index ./search/index
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
