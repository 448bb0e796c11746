package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectDirs(t *testing.T) {
	root := filepath.Join("repo")
	if got := ProjectDir(root); got != filepath.Join("repo", ".kindsort") {
		t.Errorf("ProjectDir() = %q", got)
	}
	if got := WatchLogPath(root); got != filepath.Join("repo", ".kindsort", "logs", "watch.log") {
		t.Errorf("WatchLogPath() = %q", got)
	}
}

func TestEnsureLogsDir(t *testing.T) {
	root := t.TempDir()
	dir, err := EnsureLogsDir(root)
	if err != nil {
		t.Fatalf("EnsureLogsDir() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("logs dir not created: %v", err)
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("FindRepoRoot() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRepoRoot() = %q, want %q", got, want)
	}
}

func TestFindRepoRoot_NoMarker(t *testing.T) {
	// Walks past the temp dir; only assert it returns without error
	if _, err := FindRepoRoot(t.TempDir()); err != nil {
		t.Errorf("FindRepoRoot() error = %v", err)
	}
}

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "src", "A.cs")
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := CanonicalizePath(file, root)
	if err != nil {
		t.Fatalf("CanonicalizePath() error = %v", err)
	}
	if got != "src/A.cs" {
		t.Errorf("CanonicalizePath() = %q, want src/A.cs", got)
	}

	missing, err := CanonicalizePath(filepath.Join(root, "gone.cs"), root)
	if err != nil || missing != "gone.cs" {
		t.Errorf("CanonicalizePath(missing) = %q, %v", missing, err)
	}
}

func TestIsWithinRepo(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "a.cs"), true},
		{filepath.Join(root, "..", "outside.cs"), false},
		{filepath.Join(root, "..a.cs"), true},
	}
	for _, tt := range tests {
		if got := IsWithinRepo(tt.path, root); got != tt.want {
			t.Errorf("IsWithinRepo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestJoinRepoPath(t *testing.T) {
	if got := JoinRepoPath("root", `src\A.cs`); got != filepath.Join("root", "src", "A.cs") {
		t.Errorf("JoinRepoPath() = %q", got)
	}
}
