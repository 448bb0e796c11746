package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"kindsort/internal/errors"
)

func main() {
	err := rootCmd.Execute()
	if err != nil && !stderrors.Is(err, errors.ErrFindings) {
		printError(err)
	}
	os.Exit(errors.ExitCode(err))
}

// printError writes err and its suggested fixes to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var ke *errors.KindsortError
	if !stderrors.As(err, &ke) {
		return
	}
	for _, fix := range ke.SuggestedFixes {
		if fix.Command != "" {
			fmt.Fprintf(os.Stderr, "  Try: %s (%s)\n", fix.Command, fix.Description)
		}
	}
}
