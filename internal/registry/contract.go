package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// Contract decides which discovered types count as implementations.
//
// A structural contract (Interface) accepts any concrete type whose value or
// pointer implements the interface. A nominal contract (Base) accepts the base
// type itself and any struct that embeds it, directly or through other
// embedded structs. Both kinds also accept types declared with Register.
type Contract struct {
	base       reflect.Type
	structural bool

	mu       sync.RWMutex
	declared map[reflect.Type]struct{}
}

// Interface returns a structural contract for the interface type I.
func Interface[I any]() *Contract {
	t := reflect.TypeFor[I]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("registry.Interface: %s is not an interface type", t))
	}
	return &Contract{base: t, structural: true, declared: make(map[reflect.Type]struct{})}
}

// Base returns a nominal contract rooted at the concrete type B.
func Base[B any]() *Contract {
	t := reflect.TypeFor[B]()
	if t.Kind() == reflect.Interface {
		panic(fmt.Sprintf("registry.Base: %s is an interface type, use Interface", t))
	}
	return &Contract{base: t, declared: make(map[reflect.Type]struct{})}
}

// Register declares that types satisfy the contract even though they neither
// embed the base nor implement the interface. It returns c for chaining.
func (c *Contract) Register(types ...reflect.Type) *Contract {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range types {
		if t != nil {
			c.declared[t] = struct{}{}
		}
	}
	return c
}

// Type returns the base or interface type of the contract.
func (c *Contract) Type() reflect.Type { return c.base }

// Structural reports whether the contract is interface based.
func (c *Contract) Structural() bool { return c.structural }

func (c *Contract) String() string {
	if c.structural {
		return "implements " + c.base.String()
	}
	return "extends " + c.base.String()
}

// Accepts reports whether t satisfies the contract.
func (c *Contract) Accepts(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if c.isDeclared(t) {
		return true
	}

	if c.structural {
		if t.Kind() == reflect.Interface {
			return false
		}
		return t.Implements(c.base) || reflect.PointerTo(t).Implements(c.base)
	}

	if t == c.base {
		return true
	}
	return c.embedsAccepted(t, make(map[reflect.Type]bool))
}

func (c *Contract) isDeclared(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.declared[t]
	return ok
}

// embedsAccepted walks the anonymous fields of t looking for the base or a
// declared type.
func (c *Contract) embedsAccepted(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return false
	}
	seen[t] = true

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == c.base || c.isDeclared(ft) {
			return true
		}
		if c.embedsAccepted(ft, seen) {
			return true
		}
	}
	return false
}
