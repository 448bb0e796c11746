package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kindsort/internal/csharp"
	"kindsort/internal/decl"
	"kindsort/internal/order"
	"kindsort/internal/policy"
)

type fileResult struct {
	findings []order.Finding
	digest   string
	err      error
}

// Check checks every file under roots. Files that fail to parse are listed in the
// report's Errors and do not stop the run; a build without a parser, a walk failure or
// cancellation does.
func (s *Scanner) Check(ctx context.Context, roots []string) (*Report, error) {
	if !csharp.IsAvailable() {
		return nil, csharp.ErrNoCGO
	}
	files, err := s.Files(roots)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.checkFile(gctx, s.newParser(), rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := NewReport()
	report.Files = len(files)
	for i, res := range results {
		if res.err != nil {
			report.Errors = append(report.Errors, FileError{Path: files[i], Message: res.err.Error()})
			continue
		}
		if len(res.findings) > 0 {
			report.Findings = append(report.Findings, res.findings...)
			report.Digests[files[i]] = res.digest
		}
	}

	s.logger.Info("Check complete",
		"files", report.Files,
		"findings", len(report.Findings),
		"errors", len(report.Errors),
		"duration", time.Since(start))
	return report, nil
}

func (s *Scanner) checkFile(ctx context.Context, parser FileParser, rel string) fileResult {
	src, err := s.read(rel)
	if err != nil {
		return fileResult{err: err}
	}
	file, err := parser.Parse(ctx, rel, src)
	if err != nil {
		var syn *csharp.SyntaxError
		if !errors.As(err, &syn) {
			err = fmt.Errorf("%s: %w", rel, err)
		}
		s.logger.Warn("Skipping file", "path", rel, "error", err)
		return fileResult{err: err}
	}

	res := fileResult{findings: Findings(s.policy, file), digest: digest(src)}
	s.logger.Debug("Checked file", "path", rel, "findings", len(res.findings))
	return res
}

// Findings checks every type and namespace container in f, outer before inner. Only the
// direct members of each container are compared, so a nested type gets its own finding.
func Findings(p policy.Policy, f *csharp.File) []order.Finding {
	var out []order.Finding
	for _, b := range f.Containers() {
		if !b.IsType() && decl.KindOf(b.Syntax()) != decl.KindNamespace {
			continue
		}
		if finding, ok := order.CheckOrder(p, b, b.Location(f.Path)); !ok {
			out = append(out, *finding)
		}
	}
	return out
}
