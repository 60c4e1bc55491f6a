package registry

import (
	"fmt"
	"reflect"
)

// Key is the set of types an implementation can be indexed under.
type Key interface {
	~string | ~int
}

// Named is implemented by types that choose their own key. Types without a
// Name method are indexed under their declared type name when the key type
// is string-like.
type Named[K Key] interface {
	Name() K
}

// Unit identifies a source unit that produced entries.
type Unit struct {
	ID   string // dotted module identifier, e.g. "examples.subclass.dog"
	Path string // absolute file path
}

// Implementation is a discovered type together with where it came from.
type Implementation[K Key, T any] struct {
	Key      K
	Type     reflect.Type
	Unit     Unit
	Fallback bool // true when the default implementation answered the lookup
}

// New instantiates the implementation. A pointer to a zero value is returned
// when the pointer satisfies T, otherwise the zero value itself.
func (i Implementation[K, T]) New() (T, error) {
	var zero T
	if i.Type == nil {
		return zero, fmt.Errorf("implementation %v has no type", i.Key)
	}
	if i.Type.Kind() == reflect.Interface {
		return zero, fmt.Errorf("cannot instantiate interface type %s", i.Type)
	}

	target := reflect.TypeFor[T]()
	switch {
	case reflect.PointerTo(i.Type).AssignableTo(target):
		return reflect.New(i.Type).Interface().(T), nil
	case i.Type.AssignableTo(target):
		return reflect.New(i.Type).Elem().Interface().(T), nil
	default:
		return zero, fmt.Errorf("type %s is not assignable to %s", i.Type, target)
	}
}

// instantiable reports whether values of t (or *t) can be returned as T.
func instantiable[T any](t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	target := reflect.TypeFor[T]()
	return t.AssignableTo(target) || reflect.PointerTo(t).AssignableTo(target)
}

// keyOf derives the index key for t.
func keyOf[K Key](t reflect.Type) (K, error) {
	var key K
	named := reflect.TypeFor[Named[K]]()

	switch {
	case t.Implements(named):
		return reflect.New(t).Elem().Interface().(Named[K]).Name(), nil
	case reflect.PointerTo(t).Implements(named):
		return reflect.New(t).Interface().(Named[K]).Name(), nil
	}

	kv := reflect.ValueOf(&key).Elem()
	if kv.Kind() != reflect.String {
		return key, fmt.Errorf("type %s has no Name() %s method", t, kv.Type())
	}
	if t.Name() == "" {
		return key, fmt.Errorf("unnamed type %s has no Name() method", t)
	}
	kv.SetString(t.Name())
	return key, nil
}
