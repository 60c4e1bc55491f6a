package unit

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{}

type gadget struct{}

func TestMemberConstructors(t *testing.T) {
	m := TypeOf[widget]()
	assert.Equal(t, "widget", m.Name)
	assert.Equal(t, KindType, m.Kind)
	assert.Equal(t, reflect.TypeFor[widget](), m.Type)
	assert.Empty(t, m.Origin)

	imp := Import[gadget]("tools.gadget")
	assert.Equal(t, "tools.gadget", imp.Origin)

	assert.Equal(t, KindValue, Value("answer", 42).Kind)
	assert.Equal(t, KindFunc, Value("build", func() widget { return widget{} }).Kind)
	assert.Equal(t, KindValue, Value("nothing", nil).Kind)

	assert.Equal(t, "type", KindType.String())
	assert.Equal(t, "func", KindFunc.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestCatalogRegisterAndLoad(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register("tools.widget", TypeOf[widget](), Import[gadget]("tools.gadget")))

	members, err := c.Load("tools.widget", "/src/tools/widget.go")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "tools.widget", members[0].Origin, "origin defaults to the unit")
	assert.Equal(t, "tools.gadget", members[1].Origin)

	members[0].Name = "changed"
	again, err := c.Load("tools.widget", "/src/tools/widget.go")
	require.NoError(t, err)
	assert.Equal(t, "widget", again[0].Name, "callers get a copy")

	assert.Equal(t, 2, c.Loads("tools.widget"))
	assert.True(t, c.Resident("tools.widget"))
}

func TestCatalogErrors(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.Register("a"))

	err := c.Register("a")
	assert.True(t, errors.Is(err, ErrDuplicateUnit))
	assert.Error(t, c.Register(""))
	assert.Panics(t, func() { c.MustRegister("a") })

	_, err = c.Load("missing", "/src/missing.go")
	assert.ErrorIs(t, err, ErrUnknownUnit)
	assert.Contains(t, err.Error(), "/src/missing.go")
	assert.Equal(t, 0, c.Loads("missing"))
}

func TestCatalogUnload(t *testing.T) {
	c := NewCatalog()
	c.MustRegister("a", TypeOf[widget]())
	_, err := c.Load("a", "a.go")
	require.NoError(t, err)

	c.Unload("a", "a.go")
	assert.False(t, c.Resident("a"))

	m, ok := c.Lookup("a", "widget")
	require.True(t, ok, "members survive unloading")
	assert.Equal(t, reflect.TypeFor[widget](), m.Type)

	_, ok = c.Lookup("a", "gadget")
	assert.False(t, ok)
}

func TestCatalogUnitsSorted(t *testing.T) {
	c := NewCatalog()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		c.MustRegister(id)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Units())
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	c.MustRegister("shared", TypeOf[widget]())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Load("shared", "shared.go")
			_ = c.Register(string(rune('a'+i)), TypeOf[gadget]())
			_ = c.Units()
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, c.Loads("shared"))
	assert.Len(t, c.Units(), 9)
}
