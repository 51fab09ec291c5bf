package props

import (
	"fmt"
	"strings"
)

// DecodeError reports a stored value that does not match any entry of an
// enum table or variant set. It means the store was written by incompatible
// code.
type DecodeError struct {
	Key   string
	Value string
	Type  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode value %q stored under '%s' as %s", e.Value, e.Key, e.Type)
}

// EnumEntry maps one symbolic value to its wire string.
type EnumEntry[E comparable] struct {
	Value E
	Name  string
	Wire  string
}

// EnumTable is the explicit, shared mapping between the symbolic values of
// an enum and their wire strings.
type EnumTable[E comparable] struct {
	typeName string
	entries  []EnumEntry[E]
}

// NewEnumTable builds a table. Duplicate values, names or wire strings are a
// programming error and panic.
func NewEnumTable[E comparable](typeName string, entries ...EnumEntry[E]) *EnumTable[E] {
	values := make(map[E]struct{}, len(entries))
	names := make(map[string]struct{}, len(entries))
	wires := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := values[e.Value]; dup {
			panic(fmt.Sprintf("props: enum %s declares value %v twice", typeName, e.Value))
		}
		if _, dup := names[e.Name]; dup {
			panic(fmt.Sprintf("props: enum %s declares name '%s' twice", typeName, e.Name))
		}
		if _, dup := wires[e.Wire]; dup {
			panic(fmt.Sprintf("props: enum %s maps two values to %q", typeName, e.Wire))
		}
		values[e.Value] = struct{}{}
		names[e.Name] = struct{}{}
		wires[e.Wire] = struct{}{}
	}
	return &EnumTable[E]{typeName: typeName, entries: entries}
}

// NewDefaultEnumTable builds a table for string-based enums that have no
// explicit mapping: the wire value is the lower-cased name.
func NewDefaultEnumTable[E ~string](typeName string, values ...E) *EnumTable[E] {
	entries := make([]EnumEntry[E], len(values))
	for i, v := range values {
		entries[i] = EnumEntry[E]{Value: v, Name: string(v), Wire: strings.ToLower(string(v))}
	}
	return NewEnumTable(typeName, entries...)
}

// TypeName returns the enum's name used in error messages.
func (t *EnumTable[E]) TypeName() string { return t.typeName }

// Entries returns the table in declaration order.
func (t *EnumTable[E]) Entries() []EnumEntry[E] {
	out := make([]EnumEntry[E], len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns the symbolic names in declaration order.
func (t *EnumTable[E]) Names() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Name
	}
	return out
}

// Encode returns the wire string for v.
func (t *EnumTable[E]) Encode(v E) (string, bool) {
	for _, e := range t.entries {
		if e.Value == v {
			return e.Wire, true
		}
	}
	return "", false
}

// Decode reverse-looks-up a wire string.
func (t *EnumTable[E]) Decode(wire string) (E, bool) {
	for _, e := range t.entries {
		if e.Wire == wire {
			return e.Value, true
		}
	}
	var zero E
	return zero, false
}

// ByName looks a value up by its symbolic name.
func (t *EnumTable[E]) ByName(name string) (E, bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	var zero E
	return zero, false
}

// NameOf returns the symbolic name of v.
func (t *EnumTable[E]) NameOf(v E) (string, bool) {
	for _, e := range t.entries {
		if e.Value == v {
			return e.Name, true
		}
	}
	return "", false
}

// EnumField is the untyped view of an Enum, used by loaders and emitters
// that work with symbolic names.
type EnumField interface {
	Field
	Names() []string
	SetName(name string) error
	GetName() (string, bool, error)
}

// Enum is a property whose values come from an EnumTable.
type Enum[E comparable] struct {
	bag       *Bag
	name, key string
	table     *EnumTable[E]
}

func (f *Enum[E]) Name() string { return f.name }
func (f *Enum[E]) Key() string { return f.key }
func (f *Enum[E]) Kind() Kind { return KindEnum }
func (f *Enum[E]) Table() *EnumTable[E] { return f.table }
func (f *Enum[E]) Names() []string { return f.table.Names() }

// Get decodes the stored value. An absent key is unset, never an error; a
// stored value missing from the table yields a *DecodeError.
func (f *Enum[E]) Get() (E, bool, error) {
	var zero E
	wire, ok := f.bag.store.Get(f.key)
	if !ok {
		return zero, false, nil
	}
	v, ok := f.table.Decode(wire)
	if !ok {
		return zero, false, &DecodeError{Key: f.key, Value: wire, Type: f.table.typeName}
	}
	return v, true, nil
}

// Set encodes and writes v. Values outside the table are a programming
// error and panic.
func (f *Enum[E]) Set(v E) {
	wire, ok := f.table.Encode(v)
	if !ok {
		panic(fmt.Sprintf("props: %v is not a value of enum %s", v, f.table.typeName))
	}
	f.bag.store.Set(f.key, wire)
}

// SetName sets the value by its symbolic name.
func (f *Enum[E]) SetName(name string) error {
	v, ok := f.table.ByName(name)
	if !ok {
		return fmt.Errorf("unknown %s value '%s', expected one of: %s", f.table.typeName, name, strings.Join(f.table.Names(), ", "))
	}
	f.Set(v)
	return nil
}

// GetName returns the symbolic name of the stored value.
func (f *Enum[E]) GetName() (string, bool, error) {
	v, ok, err := f.Get()
	if err != nil || !ok {
		return "", ok, err
	}
	name, _ := f.table.NameOf(v)
	return name, true, nil
}

// Clear removes the key.
func (f *Enum[E]) Clear() {
	f.bag.store.Remove(f.key)
}

// IsSet reports whether the key is present.
func (f *Enum[E]) IsSet() bool {
	return f.bag.store.Has(f.key)
}
