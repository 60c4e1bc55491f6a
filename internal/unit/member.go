package unit

import "reflect"

// Kind classifies an exported member.
type Kind int

const (
	// KindType is a type descriptor. Only these can become implementations.
	KindType Kind = iota
	// KindValue is a package-level value.
	KindValue
	// KindFunc is a function value.
	KindFunc
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindValue:
		return "value"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Member is one symbol exported by a unit.
type Member struct {
	Name   string       // declared identifier
	Kind   Kind         // type, value or func
	Origin string       // identifier of the declaring unit; empty means the exporting unit
	Type   reflect.Type // set for KindType
	Value  any          // set for KindValue and KindFunc
}

// TypeOf describes T as a type declared by the exporting unit.
func TypeOf[T any]() Member {
	t := reflect.TypeFor[T]()
	return Member{Name: t.Name(), Kind: KindType, Type: t}
}

// Import describes T as a type re-exported from the unit named origin.
func Import[T any](origin string) Member {
	m := TypeOf[T]()
	m.Origin = origin
	return m
}

// Value describes a package-level value or function.
func Value(name string, v any) Member {
	kind := KindValue
	if t := reflect.TypeOf(v); t != nil && t.Kind() == reflect.Func {
		kind = KindFunc
	}
	return Member{Name: name, Kind: kind, Value: v}
}
