package registry

import (
	"math/rand/v2"
	"path/filepath"
	"slices"
)

// Get returns the implementation registered under key. When the key is not
// indexed yet a discovery pass runs once before falling back to the default.
func (r *Registry[K, T]) Get(key K) (Implementation[K, T], error) {
	if impl, ok := r.lookup(key); ok {
		return impl, nil
	}
	r.Scan()
	if impl, ok := r.lookup(key); ok {
		return impl, nil
	}
	if r.fallback != nil {
		return r.fallbackImpl(), nil
	}
	return Implementation[K, T]{}, &NotFoundError{Key: key}
}

// Contains reports whether key is indexed. It never scans.
func (r *Registry[K, T]) Contains(key K) bool {
	_, ok := r.entries[key]
	return ok
}

// Delete removes key from the index. The unit that produced it is released
// once no other key refers to it, so a later scan loads it again.
// While the unit stays loaded, Get on the deleted key falls through to the
// default or a not-found error until the unit is evicted.
func (r *Registry[K, T]) Delete(key K) error {
	u, ok := r.sourceOf[key]
	if !ok {
		return &NotFoundError{Key: key}
	}

	delete(r.entries, key)
	delete(r.sourceOf, key)
	if !r.referenced(u.Path) {
		r.release(u)
	}
	return nil
}

// Latest scans, then returns the implementation with the greatest key under
// the configured ordering.
func (r *Registry[K, T]) Latest() (Implementation[K, T], error) {
	r.Scan()
	keys := r.Keys()
	if len(keys) == 0 {
		return r.empty()
	}
	impl, _ := r.lookup(keys[len(keys)-1])
	return impl, nil
}

// Random scans, then returns an implementation chosen uniformly at random.
func (r *Registry[K, T]) Random() (Implementation[K, T], error) {
	r.Scan()
	if len(r.entries) == 0 {
		return r.empty()
	}

	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var i int
	if r.rnd != nil {
		i = r.rnd.IntN(len(keys))
	} else {
		i = rand.IntN(len(keys))
	}
	impl, _ := r.lookup(keys[i])
	return impl, nil
}

// Evict forgets that path was loaded and drops every key it produced. The
// next scan loads the unit again. It returns the number of keys removed.
func (r *Registry[K, T]) Evict(path string) int {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var (
		removed int
		u       = Unit{Path: path}
	)
	for k, src := range r.sourceOf {
		if src.Path != path {
			continue
		}
		u = src
		delete(r.entries, k)
		delete(r.sourceOf, k)
		removed++
	}

	if _, ok := r.loaded[path]; ok {
		if u.ID == "" {
			u.ID, _ = ModulePath(r.discoveryRoot, path, r.suffix)
		}
		r.release(u)
	}
	return removed
}

// Len returns the number of indexed keys.
func (r *Registry[K, T]) Len() int { return len(r.entries) }

// Keys returns the indexed keys sorted by the configured ordering.
func (r *Registry[K, T]) Keys() []K {
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int { return compareKeys(r.ordering, a, b) })
	return keys
}

// All returns every indexed implementation in key order.
func (r *Registry[K, T]) All() []Implementation[K, T] {
	keys := r.Keys()
	out := make([]Implementation[K, T], 0, len(keys))
	for _, k := range keys {
		impl, _ := r.lookup(k)
		out = append(out, impl)
	}
	return out
}

// Source returns the unit that produced key.
func (r *Registry[K, T]) Source(key K) (Unit, bool) {
	u, ok := r.sourceOf[key]
	return u, ok
}

// Loaded returns the paths of every unit processed so far, sorted.
func (r *Registry[K, T]) Loaded() []string {
	paths := make([]string, 0, len(r.loaded))
	for p := range r.loaded {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Diagnostics returns every diagnostic recorded since construction.
func (r *Registry[K, T]) Diagnostics() []Diagnostic {
	return slices.Clone(r.diagnostics)
}

// Default returns the fallback implementation, if one was configured.
func (r *Registry[K, T]) Default() (Implementation[K, T], bool) {
	if r.fallback == nil {
		return Implementation[K, T]{}, false
	}
	return r.fallbackImpl(), true
}

func (r *Registry[K, T]) lookup(key K) (Implementation[K, T], bool) {
	t, ok := r.entries[key]
	if !ok {
		return Implementation[K, T]{}, false
	}
	return Implementation[K, T]{Key: key, Type: t, Unit: r.sourceOf[key]}, true
}

func (r *Registry[K, T]) fallbackImpl() Implementation[K, T] {
	return Implementation[K, T]{Type: r.fallback, Fallback: true}
}

func (r *Registry[K, T]) empty() (Implementation[K, T], error) {
	if r.fallback != nil {
		return r.fallbackImpl(), nil
	}
	return Implementation[K, T]{}, &NotFoundError{Empty: true}
}

func (r *Registry[K, T]) referenced(path string) bool {
	for _, u := range r.sourceOf {
		if u.Path == path {
			return true
		}
	}
	return false
}

func (r *Registry[K, T]) release(u Unit) {
	delete(r.loaded, u.Path)
	if unloader, ok := r.loader.(Unloader); ok {
		unloader.Unload(u.ID, u.Path)
	}
	r.logger.Debug("released unit", "unit", u.ID, "path", u.Path)
}
