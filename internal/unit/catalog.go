package unit

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrUnknownUnit is returned by Load when no unit was registered under an identifier.
	ErrUnknownUnit = errors.New("unit not registered")
	// ErrDuplicateUnit is returned by Register when an identifier is already taken.
	ErrDuplicateUnit = errors.New("unit already registered")
)

// Catalog maps unit identifiers to the members they export.
type Catalog struct {
	mu       sync.RWMutex
	units    map[string][]Member
	loads    map[string]int
	resident map[string]bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		units:    make(map[string][]Member),
		loads:    make(map[string]int),
		resident: make(map[string]bool),
	}
}

// Default is the catalog plugin packages register into from init.
var Default = NewCatalog()

// Register adds the unit id to the Default catalog and panics if the
// identifier is already taken. Intended for init functions.
func Register(id string, members ...Member) {
	Default.MustRegister(id, members...)
}

// Register records the members exported by unit id. Members without an
// origin are attributed to id.
func (c *Catalog) Register(id string, members ...Member) error {
	if id == "" {
		return fmt.Errorf("registering unit: empty identifier")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.units[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUnit, id)
	}

	owned := make([]Member, len(members))
	for i, m := range members {
		if m.Origin == "" {
			m.Origin = id
		}
		owned[i] = m
	}
	c.units[id] = owned
	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(id string, members ...Member) {
	if err := c.Register(id, members...); err != nil {
		panic(err)
	}
}

// Load returns the members of unit id. The path is the file the registry
// found; a static catalog only uses it in error messages.
func (c *Catalog) Load(id, path string) ([]Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	members, ok := c.units[id]
	if !ok {
		return nil, fmt.Errorf("loading %s (%s): %w", id, path, ErrUnknownUnit)
	}
	c.loads[id]++
	c.resident[id] = true

	out := make([]Member, len(members))
	copy(out, members)
	return out, nil
}

// Unload marks unit id as no longer resident. Registered members stay in
// the catalog; compiled code cannot be removed from a running binary.
func (c *Catalog) Unload(id, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resident, id)
}

// Loads reports how many times unit id has been loaded.
func (c *Catalog) Loads(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads[id]
}

// Resident reports whether unit id has been loaded and not unloaded since.
func (c *Catalog) Resident(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resident[id]
}

// Lookup finds the member called name in unit id.
func (c *Catalog) Lookup(id, name string) (Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.units[id] {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Units returns the registered identifiers in sorted order.
func (c *Catalog) Units() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.units))
	for id := range c.units {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
