package scan

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"kindsort/internal/decl"
	"kindsort/internal/order"
	"kindsort/internal/policy"
	"kindsort/internal/version"
)

func sampleReport() *Report {
	r := NewReport()
	r.Files = 2
	r.Findings = []order.Finding{
		{
			Rule:     order.RuleTypeOrder,
			Location: order.Location{Path: "src/A.cs", StartLine: 9, StartColumn: 5, StartByte: 120},
			Name:     "Inner",
			Kind:     decl.KindClass,
			Message:  "Inner is not sorted correctly",
			Policy:   policy.Serialize(policy.Default()),
		},
		{
			Rule:     order.RuleTypeOrder,
			Location: order.Location{Path: "src/A.cs", StartLine: 1, StartColumn: 1, StartByte: 0},
			Name:     "Outer",
			Kind:     decl.KindClass,
			Message:  "Outer is not sorted correctly",
			Policy:   policy.Serialize(policy.Default()),
		},
		{
			Rule:     order.RuleNamespaceOrder,
			Location: order.Location{Path: "src/B.cs", StartLine: 1, StartColumn: 1},
			Name:     "Demo",
			Kind:     decl.KindNamespace,
			Message:  "Demo is not sorted correctly",
			Policy:   policy.Serialize(policy.Default().WithAlphabetical(false)),
		},
	}
	r.Digests["src/A.cs"] = digest([]byte("a"))
	return r
}

func TestNewReport(t *testing.T) {
	r := NewReport()
	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", r.RunID, err)
	}
	if r.Tool != version.Tool || r.Version != version.Version {
		t.Errorf("Tool, Version = %q, %q", r.Tool, r.Version)
	}
	if r.HasFindings() {
		t.Error("HasFindings() = true for an empty report")
	}
	if NewReport().RunID == r.RunID {
		t.Error("run IDs repeat")
	}
}

func TestReportRoundTrip(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "class"`) {
		t.Errorf("kind not written as text:\n%s", buf.String())
	}

	got, err := ReadReport(&buf)
	if err != nil {
		t.Fatalf("ReadReport() error = %v", err)
	}
	if got.RunID != r.RunID || got.Files != r.Files || len(got.Findings) != len(r.Findings) {
		t.Errorf("ReadReport() = %+v, want %+v", got, r)
	}
	for i := range r.Findings {
		if got.Findings[i] != r.Findings[i] {
			t.Errorf("Findings[%d] = %+v, want %+v", i, got.Findings[i], r.Findings[i])
		}
	}
	if got.Digests["src/A.cs"] != r.Digests["src/A.cs"] {
		t.Errorf("Digests = %v", got.Digests)
	}

	p := policy.Deserialize(got.Findings[2].Policy)
	if p.Alphabetical() {
		t.Error("recorded policy lost Alphabetical=false")
	}
}

func TestReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := sampleReport()
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadReportFile(path)
	if err != nil {
		t.Fatalf("ReadReportFile() error = %v", err)
	}
	if got.RunID != r.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, r.RunID)
	}
	if _, err := ReadReportFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadReportFile(missing) expected error")
	}
}

func TestReadReportInvalid(t *testing.T) {
	id := uuid.New().String()
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"other tool", `{"runId":"` + id + `","tool":"other"}`},
		{"bad run id", `{"runId":"nope","tool":"kindsort"}`},
		{"empty path", `{"runId":"` + id + `","tool":"kindsort","findings":[{"location":{"path":""}}]}`},
		{"escaping path", `{"runId":"` + id + `","tool":"kindsort","findings":[{"location":{"path":"../x.cs"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadReport(strings.NewReader(tt.json)); err == nil {
				t.Errorf("ReadReport(%s) expected error", tt.json)
			}
		})
	}
}

func TestByPath(t *testing.T) {
	groups := sampleReport().ByPath()
	if len(groups) != 2 {
		t.Fatalf("ByPath() has %d groups, want 2", len(groups))
	}
	a := groups["src/A.cs"]
	if len(a) != 2 || a[0].Name != "Outer" || a[1].Name != "Inner" {
		t.Errorf("src/A.cs findings = %+v, want Outer then Inner", a)
	}
}
