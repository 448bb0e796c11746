package scan

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"kindsort/internal/config"
	"kindsort/internal/policy"
)

// writeTree creates files under root. Paths use forward slashes.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestScanner(t *testing.T, files map[string]string) *Scanner {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)
	return New(root, config.DefaultConfig(), policy.Default(), nil)
}

func TestFiles(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"src/A.cs":          "",
		"src/sub/B.cs":      "",
		"src/readme.md":     "",
		"bin/Debug/Gen.cs":  "",
		"obj/X.cs":          "",
		"tests/CTest.cs":    "",
		"tests/fixture.txt": "",
	})

	got, err := s.Files(nil)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	want := []string{"src/A.cs", "src/sub/B.cs", "tests/CTest.cs"}
	if !slices.Equal(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}

func TestFilesRoots(t *testing.T) {
	s := newTestScanner(t, map[string]string{
		"src/A.cs":     "",
		"src/sub/B.cs": "",
		"other/C.cs":   "",
		"bin/D.cs":     "",
	})

	tests := []struct {
		name  string
		roots []string
		want  []string
	}{
		{"directory", []string{"src"}, []string{"src/A.cs", "src/sub/B.cs"}},
		{"explicit file", []string{"other/C.cs"}, []string{"other/C.cs"}},
		{"duplicates", []string{"src", "src/A.cs"}, []string{"src/A.cs", "src/sub/B.cs"}},
		{"excluded file", []string{"bin/D.cs"}, nil},
		{"absolute", []string{filepath.Join(s.Root(), "other")}, []string{"other/C.cs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Files(tt.roots)
			if err != nil {
				t.Fatalf("Files(%v) error = %v", tt.roots, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Files(%v) = %v, want %v", tt.roots, got, tt.want)
			}
		})
	}
}

func TestFilesErrors(t *testing.T) {
	s := newTestScanner(t, map[string]string{"A.cs": ""})

	if _, err := s.Files([]string{"missing"}); err == nil {
		t.Error("Files(missing) expected error")
	}
	if _, err := s.Files([]string{filepath.Dir(s.Root())}); err == nil {
		t.Error("Files(parent) expected error for a path outside the repository")
	}
}

func TestIncludedExcluded(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Include = []string{"src/**/*.cs"}
	cfg.Exclude = []string{"**/Generated/**", "src/Legacy.cs"}
	s := New(t.TempDir(), cfg, policy.Default(), nil)

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/A.cs", true},
		{"src/deep/er/B.cs", true},
		{"lib/A.cs", false},
		{"src/A.txt", false},
		{"src/Generated/G.cs", false},
		{"src/Legacy.cs", false},
	}
	for _, tt := range tests {
		if got := s.Included(tt.rel); got != tt.want {
			t.Errorf("Included(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}

	if !s.Excluded("src/Generated", true) {
		t.Error("Excluded(src/Generated, dir) = false, want true")
	}
	if s.Excluded("src", true) {
		t.Error("Excluded(src, dir) = true, want false")
	}
}

func TestNewDefaults(t *testing.T) {
	s := New(t.TempDir(), nil, policy.Policy{}, nil)
	if !s.Policy().Equal(policy.Default()) {
		t.Errorf("Policy() = %v, want default", policy.Serialize(s.Policy()))
	}
	if s.workers() != config.DefaultConfig().Workers {
		t.Errorf("workers() = %d", s.workers())
	}
}
