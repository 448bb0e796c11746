// Package testutil provides fixtures and golden-file comparison for fix tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

// FixtureContext holds information about a loaded fixture.
type FixtureContext struct {
	// Name is the fixture directory name under testdata/fixtures.
	Name string

	// Root is the absolute path to the fixture directory
	Root string

	// Input is the unsorted C# source.
	Input []byte

	// ExpectedPath is the golden file holding the sorted source.
	ExpectedPath string
}

// LoadFixture loads a fixture, failing the test on error.
func LoadFixture(t *testing.T, name string) *FixtureContext {
	t.Helper()

	fixtureDir := filepath.Join(getFixturesRoot(t), name)
	input, err := os.ReadFile(filepath.Join(fixtureDir, "input.cs"))
	if err != nil {
		t.Fatalf("Failed to read fixture input: %v", err)
	}

	return &FixtureContext{
		Name:         name,
		Root:         fixtureDir,
		Input:        input,
		ExpectedPath: filepath.Join(fixtureDir, "expected.cs"),
	}
}

// getFixturesRoot returns the absolute path to testdata/fixtures/.
func getFixturesRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get caller information")
	}

	// Navigate from internal/testutil to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	fixturesRoot := filepath.Join(projectRoot, "testdata", "fixtures")

	if _, err := os.Stat(fixturesRoot); os.IsNotExist(err) {
		t.Fatalf("Fixtures root not found: %s", fixturesRoot)
	}

	return fixturesRoot
}

// AvailableFixtures returns the sorted names of fixtures that have an input file.
func AvailableFixtures(t *testing.T) []string {
	t.Helper()

	root := getFixturesRoot(t)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read fixtures directory: %v", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || isHiddenDir(entry.Name()) {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), "input.cs")); err == nil {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names
}

// ForEachFixture runs fn for each available fixture.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	names := AvailableFixtures(t)
	if len(names) == 0 {
		t.Skip("No fixtures available")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			fn(t, LoadFixture(t, name))
		})
	}
}

func isHiddenDir(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
