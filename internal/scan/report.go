package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"

	"kindsort/internal/order"
	"kindsort/internal/version"
)

// FileError records a file that could not be checked or fixed.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Report is the result of a check run. It is also the input of a fix run, which applies
// each finding with the policy recorded in it.
type Report struct {
	RunID    string            `json:"runId"`
	Tool     string            `json:"tool"`
	Version  string            `json:"version"`
	Files    int               `json:"files"`
	Findings []order.Finding   `json:"findings"`
	Digests  map[string]string `json:"digests,omitempty"`
	Errors   []FileError       `json:"errors,omitempty"`
}

// NewReport creates an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{
		RunID:    uuid.New().String(),
		Tool:     version.Tool,
		Version:  version.Version,
		Findings: []order.Finding{},
		Digests:  map[string]string{},
	}
}

// HasFindings reports whether any container was out of order.
func (r *Report) HasFindings() bool { return len(r.Findings) > 0 }

// ByPath groups findings by file, each group in ascending source order.
func (r *Report) ByPath() map[string][]order.Finding {
	out := make(map[string][]order.Finding)
	for _, f := range r.Findings {
		out[f.Location.Path] = append(out[f.Location.Path], f)
	}
	for _, fs := range out {
		slices.SortStableFunc(fs, func(a, b order.Finding) int {
			return a.Location.StartByte - b.Location.StartByte
		})
	}
	return out
}

// Write encodes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadReport decodes and validates a report.
func ReadReport(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if r.Tool != version.Tool {
		return nil, fmt.Errorf("report was written by %q, not %s", r.Tool, version.Tool)
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		return nil, fmt.Errorf("report run id: %w", err)
	}
	for i, f := range r.Findings {
		if f.Location.Path == "" || strings.HasPrefix(f.Location.Path, "../") {
			return nil, fmt.Errorf("finding %d: invalid path %q", i, f.Location.Path)
		}
	}
	return &r, nil
}

// ReadReportFile reads a report from path.
func ReadReportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadReport(f)
}

func digest(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}
