package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"kindsort/internal/errors"
	"kindsort/internal/scan"
	"kindsort/internal/watcher"
)

var (
	checkFormat string
	checkPolicy string
	checkOutput string
	checkWatch  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report types and namespaces whose members are out of order",
	Long: `Check C# files for members that are not in canonical order.

Paths may be files or directories; no paths checks the whole repository.
Exits 1 when any container is out of order and 2 on errors.

Examples:
  kindsort check
  kindsort check src/Services
  kindsort check --format sarif --output kindsort.sarif
  kindsort check --format json --output report.json && kindsort fix --report report.json
  kindsort check --watch`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format (human, json, sarif)")
	checkCmd.Flags().StringVar(&checkPolicy, "policy", "", "Policy file (default: configured policyFile)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Write the report to a file instead of stdout")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check files as they change")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(checkFormat)
	switch format {
	case FormatHuman, FormatJSON, FormatSARIF:
	default:
		return errors.New(errors.InternalError, fmt.Sprintf("unsupported format: %s", checkFormat), nil)
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	p, err := e.loadPolicy(checkPolicy)
	if err != nil {
		return err
	}
	s := e.scanner(p)

	ctx, cancel := newContext()
	defer cancel()

	report, err := s.Check(ctx, args)
	if err != nil {
		return wrapScanError(err)
	}
	if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if checkWatch {
		return watchAndCheck(ctx, cmd, e, s, format)
	}

	if err := e.fileErrors(cmd, report.Errors); err != nil {
		return err
	}
	if report.HasFindings() {
		return errors.ErrFindings
	}
	return nil
}

func writeReport(stdout io.Writer, report *scan.Report, format OutputFormat) error {
	out, err := FormatReport(report, format)
	if err != nil {
		return errors.New(errors.InternalError, "Failed to format report", err)
	}
	if checkOutput == "" {
		fmt.Fprintln(stdout, out)
		return nil
	}
	if err := os.WriteFile(checkOutput, []byte(out+"\n"), 0644); err != nil {
		return errors.New(errors.WriteFailed, "Failed to write report", err)
	}
	return nil
}

// watchAndCheck re-checks changed files until interrupted.
func watchAndCheck(ctx context.Context, cmd *cobra.Command, e *env, s *scan.Scanner, format OutputFormat) error {
	logger := e.factory.WatchLogger(cmd.ErrOrStderr())

	var mu sync.Mutex
	handler := func(events []watcher.Event) {
		mu.Lock()
		defer mu.Unlock()

		changed := watcher.Existing(e.root, events)
		if len(changed) == 0 {
			return
		}
		report, err := s.Check(ctx, changed)
		if err != nil {
			logger.Error("Re-check failed", "error", err)
			return
		}
		logger.Info("Re-checked files", "files", report.Files, "findings", len(report.Findings))
		for _, f := range report.Errors {
			logger.Warn("Skipped file", "path", f.Path, "error", f.Message)
		}
		if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
			logger.Error("Failed to write report", "error", err)
		}
	}

	w, err := watcher.New(watcher.Config{
		Root:     e.root,
		Debounce: time.Duration(e.config.Watch.DebounceMs) * time.Millisecond,
		Match:    s.Included,
		Ignore:   s.Excluded,
	}, logger, handler)
	if err != nil {
		return errors.New(errors.InternalError, "Failed to start watcher", err)
	}
	defer w.Close()

	return w.Run(ctx)
}
