package registry

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/productor/internal/unit"
)

type eater interface {
	Eat(food string) string
}

type baseAnimal struct{}

type cat struct{ baseAnimal }

func (cat) Name() string           { return "cat" }
func (cat) Eat(food string) string { return "cat eats " + food }

type dog struct{ baseAnimal }

func (dog) Name() string           { return "dog" }
func (dog) Eat(food string) string { return "dog eats " + food }

// kitten embeds cat, so it reaches the base two levels down.
type kitten struct{ *cat }

func (kitten) Name() string { return "kitten" }

// tabby collides with cat on purpose.
type tabby struct{ baseAnimal }

func (tabby) Name() string { return "cat" }

type bird struct{}

func (bird) Name() string            { return "bird" }
func (*bird) Eat(food string) string { return "bird eats " + food }

type stone struct{}

type unstable struct{ baseAnimal }

func (unstable) Name() string { panic("name unavailable") }

type release19 struct{ baseAnimal }

func (release19) Name() string { return "v1.9.0" }

type release110 struct{ baseAnimal }

func (release110) Name() string { return "v1.10.0" }

type two struct{ baseAnimal }

func (two) Name() int { return 2 }

type ten struct{ baseAnimal }

func (ten) Name() int { return 10 }

// quietLogger discards registry output in tests.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// writeUnits creates empty source files under root.
func writeUnits(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("package plugins\n"), 0o644))
	}
}

// petFixture lays out root/plugins/{cat,dog}.go backed by a private catalog.
type petFixture struct {
	root    string
	plugins string
	catalog *unit.Catalog
}

func newPetFixture(t *testing.T) *petFixture {
	t.Helper()
	root := t.TempDir()
	writeUnits(t, root, "plugins/cat.go", "plugins/dog.go")

	catalog := unit.NewCatalog()
	catalog.MustRegister("plugins.cat", unit.TypeOf[cat]())
	catalog.MustRegister("plugins.dog", unit.TypeOf[dog]())

	return &petFixture{root: root, plugins: filepath.Join(root, "plugins"), catalog: catalog}
}

func (f *petFixture) open(t *testing.T, opts ...Option) *Registry[string, eater] {
	t.Helper()
	opts = append([]Option{WithLoader(f.catalog), WithLogger(quietLogger())}, opts...)
	r, err := New[string, eater](f.root, f.plugins, Interface[eater](), opts...)
	require.NoError(t, err)
	return r
}
