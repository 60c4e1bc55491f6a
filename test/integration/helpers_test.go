//go:build integration

package integration_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/agentx-labs/productor/internal/registry"
	"github.com/agentx-labs/productor/internal/unit"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so ~/.productor/config.yaml is sandboxed
	ProjectDir string // discovery root of the synthetic plugin tree
	RepoRoot   string // root of this repository, holding examples/
	Catalog    *unit.Catalog
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("resolving repo root: %v", err)
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		RepoRoot:   repoRoot,
		Catalog:    unit.NewCatalog(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// quiet returns the option that keeps registry warnings out of test output.
func quiet() registry.Option {
	return registry.WithLogger(log.New(io.Discard))
}

// writeUnit creates an empty source unit at ProjectDir/<rel> and registers
// members for it under the identifier its path translates to.
func (env *testEnv) writeUnit(t *testing.T, rel string, members ...unit.Member) string {
	t.Helper()
	path := filepath.Join(env.ProjectDir, filepath.FromSlash(rel))
	writeFile(t, path, "package plugins\n")

	id, ok := registry.ModulePath(env.ProjectDir, path, ".go")
	if !ok {
		t.Fatalf("%s does not translate to a module identifier", rel)
	}
	if len(members) > 0 {
		env.Catalog.MustRegister(id, members...)
	}
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertKeys fails unless the registry indexes exactly want, in order.
func assertKeys[T any](t *testing.T, r *registry.Registry[string, T], want ...string) {
	t.Helper()
	got := r.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

// assertLoaded fails unless path has been processed by the registry.
func assertLoaded[T any](t *testing.T, r *registry.Registry[string, T], path string) {
	t.Helper()
	for _, p := range r.Loaded() {
		if p == path {
			return
		}
	}
	t.Errorf("expected %s to be loaded, loaded: %v", path, r.Loaded())
}

// assertNotLoaded fails if path has been processed by the registry.
func assertNotLoaded[T any](t *testing.T, r *registry.Registry[string, T], path string) {
	t.Helper()
	for _, p := range r.Loaded() {
		if p == path {
			t.Errorf("expected %s NOT to be loaded", path)
			return
		}
	}
}
