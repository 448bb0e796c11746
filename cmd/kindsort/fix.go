package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kindsort/internal/errors"
	"kindsort/internal/scan"
)

var (
	fixReport string
	fixDryRun bool
	fixPolicy string
	fixFormat string
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Reorder members into canonical order",
	Long: `Rewrite C# files so every type and namespace lists its members in canonical order.
Comments and blank lines travel with the member they precede.

With --report, only the findings in a report written by "kindsort check --format json"
are fixed, each with the policy recorded in the report. Files edited since the report
was written are skipped.

With --dry-run nothing is written and the command exits 1 when a file would change.

Examples:
  kindsort fix
  kindsort fix src/Widget.cs --dry-run
  kindsort fix --report report.json`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringVar(&fixReport, "report", "", "Apply the findings of a JSON check report")
	fixCmd.Flags().BoolVarP(&fixDryRun, "dry-run", "n", false, "Show which files would change without writing them")
	fixCmd.Flags().StringVar(&fixPolicy, "policy", "", "Policy file (default: configured policyFile)")
	fixCmd.Flags().StringVar(&fixFormat, "format", "human", "Output format (human, json)")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	if fixReport != "" && len(args) > 0 {
		return errors.New(errors.InternalError, "paths cannot be combined with --report", nil)
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	p, err := e.loadPolicy(fixPolicy)
	if err != nil {
		return err
	}
	s := e.scanner(p)
	opts := scan.FixOptions{DryRun: fixDryRun}

	ctx, cancel := newContext()
	defer cancel()

	var res *scan.FixResult
	if fixReport != "" {
		report, rerr := scan.ReadReportFile(fixReport)
		if rerr != nil {
			return errors.New(errors.ReportInvalid, "Failed to read report", rerr)
		}
		e.logger.Debug("Applying report", "runId", report.RunID, "findings", len(report.Findings))
		res, err = s.FixReport(ctx, report, opts)
	} else {
		res, err = s.Fix(ctx, args, opts)
	}
	if err != nil {
		if res != nil {
			return errors.New(errors.WriteFailed, "Failed to write fixed files", err)
		}
		return wrapScanError(err)
	}

	out, err := FormatFixResult(res, fixDryRun, OutputFormat(fixFormat))
	if err != nil {
		return errors.New(errors.InternalError, "Failed to format result", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if err := e.fileErrors(cmd, res.Errors); err != nil {
		return err
	}
	if fixDryRun && len(res.Changes) > 0 {
		return errors.ErrFindings
	}
	return nil
}
