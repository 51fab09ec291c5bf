// Package props binds strongly typed properties onto a params.Store.
//
// Each accessor (String, Bool, Enum, Compound) knows its DSL name and its
// backing key, and encodes/decodes values through an explicit codec. Fields
// are declared on a Bag, which owns the store they read and write. Rebinding
// a Bag to another store moves every field declared on it, including the
// active variants of nested compounds.
package props

import (
	"fmt"

	"github.com/vk/stepconf/internal/params"
)

// Kind identifies the shape of a Field.
type Kind string

const (
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindEnum     Kind = "enum"
	KindCompound Kind = "compound"
)

// Field is the untyped view of a declared property.
type Field interface {
	// Name is the DSL name, used in validation paths and definition files.
	Name() string
	// Key is the parameter key the value is stored under.
	Key() string
	Kind() Kind
	IsSet() bool
	Clear()
}

// rebinder is implemented by fields that hold state tied to the store.
type rebinder interface {
	rebind()
}

// Bag is a parameter store together with the ordered list of fields
// declared on it.
type Bag struct {
	store  *params.Store
	fields []Field
	byName map[string]Field
}

// NewBag creates a Bag over s. A nil store gets a fresh one.
func NewBag(s *params.Store) *Bag {
	if s == nil {
		s = params.New()
	}
	return &Bag{store: s, byName: make(map[string]Field)}
}

// Store returns the store the bag currently writes to.
func (b *Bag) Store() *params.Store {
	return b.store
}

// Fields returns the declared fields in declaration order.
func (b *Bag) Fields() []Field {
	out := make([]Field, len(b.fields))
	copy(out, b.fields)
	return out
}

// Field looks a declared field up by its DSL name.
func (b *Bag) Field(name string) (Field, bool) {
	f, ok := b.byName[name]
	return f, ok
}

// Rebind points the bag and all of its fields at s.
func (b *Bag) Rebind(s *params.Store) {
	b.store = s
	for _, f := range b.fields {
		if r, ok := f.(rebinder); ok {
			r.rebind()
		}
	}
}

func (b *Bag) add(f Field) {
	if _, exists := b.byName[f.Name()]; exists {
		panic(fmt.Sprintf("props: field '%s' already declared", f.Name()))
	}
	b.byName[f.Name()] = f
	b.fields = append(b.fields, f)
}

// keyOrName returns key, or name when key is empty.
func keyOrName(name, key string) string {
	if key == "" {
		return name
	}
	return key
}

// String declares a string property. An empty key defaults to name.
func (b *Bag) String(name, key string) *String {
	f := &String{bag: b, name: name, key: keyOrName(name, key)}
	b.add(f)
	return f
}

// Bool declares a boolean property encoded with codec. An empty key
// defaults to name.
func (b *Bag) Bool(name, key string, codec BoolCodec) *Bool {
	f := &Bool{bag: b, name: name, key: keyOrName(name, key), codec: codec}
	b.add(f)
	return f
}

// EnumOf declares an enum property mapped through table. An empty key
// defaults to name.
func EnumOf[E comparable](b *Bag, name, key string, table *EnumTable[E]) *Enum[E] {
	f := &Enum[E]{bag: b, name: name, key: keyOrName(name, key), table: table}
	b.add(f)
	return f
}

// CompoundOf declares a compound property whose variants come from set. An
// empty key defaults to name.
func CompoundOf[V Variant](b *Bag, name, key string, set *VariantSet[V]) *Compound[V] {
	f := &Compound[V]{bag: b, name: name, key: keyOrName(name, key), set: set}
	b.add(f)
	return f
}
