package scan

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"kindsort/internal/csharp"
	"kindsort/internal/decl"
	"kindsort/internal/order"
)

// FixOptions controls how fixes are written.
type FixOptions struct {
	// DryRun computes the rewritten files without saving them.
	DryRun bool
}

// Change is a file whose content a fix run rewrote.
type Change struct {
	Path   string
	Before []byte
	After  []byte
}

// FixResult summarizes a fix run.
type FixResult struct {
	Files   int
	Changes []Change
	Errors  []FileError
}

// Changed returns the paths of the rewritten files.
func (r *FixResult) Changed() []string {
	out := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		out[i] = c.Path
	}
	return out
}

type fixResult struct {
	change *Change
	err    error
}

// Fix reorders every container of every file under roots with the scanner's policy.
func (s *Scanner) Fix(ctx context.Context, roots []string, opts FixOptions) (*FixResult, error) {
	if !csharp.IsAvailable() {
		return nil, csharp.ErrNoCGO
	}
	files, err := s.Files(roots)
	if err != nil {
		return nil, err
	}
	return s.fixFiles(ctx, files, opts, func(f *csharp.File) (*csharp.File, error) {
		return f.Rewrite(func(c decl.Container) decl.Container {
			return order.ApplyOrder(s.policy, c)
		}), nil
	})
}

// FixReport applies the findings of a check report. Each finding is corrected with the
// policy recorded in it, not the scanner's. A file whose content no longer matches the
// digest taken at check time is skipped.
func (s *Scanner) FixReport(ctx context.Context, report *Report, opts FixOptions) (*FixResult, error) {
	if !csharp.IsAvailable() {
		return nil, csharp.ErrNoCGO
	}
	byPath := report.ByPath()
	files := make([]string, 0, len(byPath))
	for path := range byPath {
		files = append(files, path)
	}
	slices.Sort(files)

	return s.fixFiles(ctx, files, opts, func(f *csharp.File) (*csharp.File, error) {
		for _, finding := range byPath[f.Path] {
			body, ok := f.ContainerAt(finding.Location.StartByte)
			if !ok {
				return nil, fmt.Errorf("%s: no container at byte %d", finding.Location, finding.Location.StartByte)
			}
			f, _ = f.Replace(finding.Location.StartByte, order.ApplyFinding(finding, body))
		}
		return f, nil
	}, func(rel string, src []byte) error {
		if want, ok := report.Digests[rel]; ok && want != digest(src) {
			return fmt.Errorf("%s changed since the report was written", rel)
		}
		return nil
	})
}

func (s *Scanner) fixFiles(ctx context.Context, files []string, opts FixOptions,
	rewrite func(*csharp.File) (*csharp.File, error), guards ...func(string, []byte) error) (*FixResult, error) {
	results := make([]fixResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.fixFile(gctx, s.newParser(), rel, rewrite, guards)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &FixResult{Files: len(files)}
	for i, res := range results {
		switch {
		case res.err != nil:
			out.Errors = append(out.Errors, FileError{Path: files[i], Message: res.err.Error()})
		case res.change != nil:
			out.Changes = append(out.Changes, *res.change)
		}
	}

	// Nothing is written until every file has been rewritten
	if !opts.DryRun {
		for _, c := range out.Changes {
			if err := s.write(c.Path, c.After); err != nil {
				return out, fmt.Errorf("write %s: %w", c.Path, err)
			}
		}
	}

	s.logger.Info("Fix complete",
		"files", out.Files,
		"changed", len(out.Changes),
		"errors", len(out.Errors),
		"dryRun", opts.DryRun)
	return out, nil
}

func (s *Scanner) fixFile(ctx context.Context, parser FileParser, rel string,
	rewrite func(*csharp.File) (*csharp.File, error), guards []func(string, []byte) error) fixResult {
	src, err := s.read(rel)
	if err != nil {
		return fixResult{err: err}
	}
	for _, guard := range guards {
		if err := guard(rel, src); err != nil {
			return fixResult{err: err}
		}
	}
	file, err := parser.Parse(ctx, rel, src)
	if err != nil {
		s.logger.Warn("Skipping file", "path", rel, "error", err)
		return fixResult{err: err}
	}
	fixed, err := rewrite(file)
	if err != nil {
		return fixResult{err: err}
	}

	after := fixed.Render()
	if bytes.Equal(after, src) {
		return fixResult{}
	}
	s.logger.Debug("Reordered file", "path", rel)
	return fixResult{change: &Change{Path: rel, Before: src, After: after}}
}
