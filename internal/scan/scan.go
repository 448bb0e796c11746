// Package scan runs the ordering checks and fixes over C# files in a repository.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"kindsort/internal/config"
	"kindsort/internal/csharp"
	"kindsort/internal/paths"
	"kindsort/internal/policy"
	"kindsort/internal/slogutil"
)

// FileParser parses one C# source file.
type FileParser interface {
	Parse(ctx context.Context, path string, src []byte) (*csharp.File, error)
}

// Scanner checks and fixes the files under a repository root. Each worker gets its own
// parser from the factory.
type Scanner struct {
	root      string
	config    *config.Config
	policy    policy.Policy
	newParser func() FileParser
	logger    *slog.Logger
}

// New creates a scanner for repoRoot. A nil cfg uses the default configuration and a
// nil logger discards output.
func New(repoRoot string, cfg *config.Config, p policy.Policy, logger *slog.Logger) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{
		root:      repoRoot,
		config:    cfg,
		policy:    p.Resolved(),
		newParser: func() FileParser { return csharp.NewParser() },
		logger:    slogutil.OrDiscard(logger),
	}
}

// WithParser returns a copy of s that builds parsers with fn.
func (s *Scanner) WithParser(fn func() FileParser) *Scanner {
	c := *s
	c.newParser = fn
	return &c
}

// Policy returns the policy files are checked against.
func (s *Scanner) Policy() policy.Policy { return s.policy }

// Root returns the repository root.
func (s *Scanner) Root() string { return s.root }

// Excluded reports whether the repo-relative slash path rel matches an exclude pattern.
// Directories also match patterns that cover their contents.
func (s *Scanner) Excluded(rel string, dir bool) bool {
	for _, pattern := range s.config.Exclude {
		if match(pattern, rel) || (dir && match(pattern, rel+"/")) {
			return true
		}
	}
	return false
}

// Included reports whether rel is a file the scanner checks.
func (s *Scanner) Included(rel string) bool {
	if s.Excluded(rel, false) {
		return false
	}
	for _, pattern := range s.config.Include {
		if match(pattern, rel) {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// Files expands roots into the sorted, de-duplicated list of repo-relative files to
// check. Directories are walked and filtered by the include and exclude patterns.
// Files named explicitly only need a .cs extension and must not be excluded. No roots
// means the whole repository.
func (s *Scanner) Files(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{s.root}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(rel string) {
		if !seen[rel] {
			seen[rel] = true
			out = append(out, rel)
		}
	}

	for _, root := range roots {
		abs := root
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(s.root, root)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		rel, err := paths.CanonicalizePath(abs, s.root)
		if err != nil {
			return nil, err
		}
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, fmt.Errorf("%s is outside the repository %s", root, s.root)
		}

		if !info.IsDir() {
			if strings.EqualFold(filepath.Ext(rel), ".cs") && !s.Excluded(rel, false) {
				add(rel)
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := paths.CanonicalizePath(path, s.root)
			if err != nil {
				return err
			}
			if d.IsDir() {
				if rel != "." && s.Excluded(rel, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.Included(rel) {
				add(rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	slices.Sort(out)
	return out, nil
}

func (s *Scanner) workers() int {
	if s.config.Workers < 1 {
		return 1
	}
	return s.config.Workers
}

func (s *Scanner) read(rel string) ([]byte, error) {
	return os.ReadFile(paths.JoinRepoPath(s.root, rel))
}

func (s *Scanner) write(rel string, data []byte) error {
	path := paths.JoinRepoPath(s.root, rel)
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
