package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"kindsort/internal/scan"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatSARIF OutputFormat = "sarif"
)

// FormatReport renders a check report in the given format.
func FormatReport(r *scan.Report, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(r)
	case FormatHuman:
		return formatReportHuman(r), nil
	case FormatSARIF:
		return FormatReportAsSARIF(r)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatFixResult renders a fix result in the given format.
func FormatFixResult(r *scan.FixResult, dryRun bool, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(newFixResponse(r, dryRun))
	case FormatHuman:
		return formatFixHuman(r, dryRun), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatReportHuman(r *scan.Report) string {
	var b strings.Builder
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "%s: %s %s (%s)\n", f.Location, f.Rule, f.Message, f.Kind)
	}
	fmt.Fprintf(&b, "%s checked, %s", plural(r.Files, "file"), plural(len(r.Findings), "finding"))
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, ", %s", plural(len(r.Errors), "error"))
	}
	return b.String()
}

// FixResponseCLI is the JSON shape of a fix run.
type FixResponseCLI struct {
	DryRun  bool             `json:"dryRun"`
	Files   int              `json:"files"`
	Changed []string         `json:"changed"`
	Errors  []scan.FileError `json:"errors,omitempty"`
}

func newFixResponse(r *scan.FixResult, dryRun bool) *FixResponseCLI {
	return &FixResponseCLI{
		DryRun:  dryRun,
		Files:   r.Files,
		Changed: r.Changed(),
		Errors:  r.Errors,
	}
}

func formatFixHuman(r *scan.FixResult, dryRun bool) string {
	verb, summary := "fixed", "fixed"
	if dryRun {
		verb, summary = "would fix", "would be fixed"
	}
	var b strings.Builder
	for _, path := range r.Changed() {
		fmt.Fprintf(&b, "%s %s\n", verb, path)
	}
	fmt.Fprintf(&b, "%s checked, %s %s", plural(r.Files, "file"), plural(len(r.Changes), "file"), summary)
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
