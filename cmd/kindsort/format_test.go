package main

import (
	"encoding/json"
	"strings"
	"testing"

	"kindsort/internal/decl"
	"kindsort/internal/order"
	"kindsort/internal/policy"
	"kindsort/internal/scan"
)

func testReport() *scan.Report {
	r := scan.NewReport()
	r.Files = 3
	r.Findings = []order.Finding{
		{
			Rule:     order.RuleTypeOrder,
			Location: order.Location{Path: "src/Widget.cs", StartLine: 6, StartColumn: 5, EndLine: 19, EndColumn: 6},
			Name:     "Widget",
			Kind:     decl.KindClass,
			Message:  "Widget is not sorted correctly",
			Policy:   policy.Serialize(policy.Default()),
		},
		{
			Rule:     order.RuleNamespaceOrder,
			Location: order.Location{Path: "src/Demo.cs", StartLine: 1, StartColumn: 1},
			Name:     "Demo",
			Kind:     decl.KindNamespace,
			Message:  "Demo is not sorted correctly",
			Policy:   policy.Serialize(policy.Default()),
		},
	}
	return r
}

func TestFormatReportHuman(t *testing.T) {
	out, err := FormatReport(testReport(), FormatHuman)
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if want := "src/Widget.cs:6:5: KSORT001 Widget is not sorted correctly (class)"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if want := "3 files checked, 2 findings"; lines[2] != want {
		t.Errorf("summary = %q, want %q", lines[2], want)
	}
}

func TestFormatReportHumanErrors(t *testing.T) {
	r := scan.NewReport()
	r.Files = 1
	r.Errors = []scan.FileError{{Path: "a.cs", Message: "a.cs:1:1: syntax error"}}

	out, err := FormatReport(r, FormatHuman)
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}
	if out != "1 file checked, 0 findings, 1 error" {
		t.Errorf("FormatReport() = %q", out)
	}
}

func TestFormatReportJSON(t *testing.T) {
	r := testReport()
	out, err := FormatReport(r, FormatJSON)
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	var decoded scan.Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.RunID != r.RunID || len(decoded.Findings) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Findings[1].Kind != decl.KindNamespace {
		t.Errorf("Kind = %v, want namespace", decoded.Findings[1].Kind)
	}
}

func TestFormatReportUnsupported(t *testing.T) {
	if _, err := FormatReport(testReport(), OutputFormat("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatFixResult(t *testing.T) {
	res := &scan.FixResult{
		Files:   4,
		Changes: []scan.Change{{Path: "src/A.cs"}, {Path: "src/B.cs"}},
	}

	tests := []struct {
		dryRun bool
		want   string
	}{
		{false, "fixed src/A.cs\nfixed src/B.cs\n4 files checked, 2 files fixed"},
		{true, "would fix src/A.cs\nwould fix src/B.cs\n4 files checked, 2 files would be fixed"},
	}
	for _, tt := range tests {
		out, err := FormatFixResult(res, tt.dryRun, FormatHuman)
		if err != nil {
			t.Fatalf("FormatFixResult() error = %v", err)
		}
		if out != tt.want {
			t.Errorf("FormatFixResult(dryRun=%v) = %q, want %q", tt.dryRun, out, tt.want)
		}
	}

	out, err := FormatFixResult(res, true, FormatJSON)
	if err != nil {
		t.Fatalf("FormatFixResult(json) error = %v", err)
	}
	var decoded FixResponseCLI
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !decoded.DryRun || len(decoded.Changed) != 2 || decoded.Files != 4 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{2, "2 files"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "file"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
