package props

import (
	"fmt"
	"reflect"

	"github.com/vk/stepconf/internal/params"
	"github.com/vk/stepconf/internal/validate"
)

// Variant is one shape of a compound property. A variant carries its own
// discriminator tag and a Bag for its sub-fields. Until it is set on a
// compound the bag writes to a detached store.
type Variant interface {
	Tag() string
	Bag() *Bag
}

// VariantBase implements Variant and is meant to be embedded.
type VariantBase struct {
	tag string
	bag *Bag
}

// NewVariantBase creates a detached variant carrying tag.
func NewVariantBase(tag string) VariantBase {
	return VariantBase{tag: tag, bag: NewBag(nil)}
}

func (v *VariantBase) Tag() string { return v.tag }
func (v *VariantBase) Bag() *Bag { return v.bag }

// HasParam reports whether key is present in the store the variant is
// bound to.
func (v *VariantBase) HasParam(key string) bool {
	return v.bag.store.Has(key)
}

// VariantDef declares one variant of a VariantSet.
type VariantDef[V Variant] struct {
	// Name is the DSL name, e.g. "file".
	Name string
	New  func() V
	// Deprecated, when non-empty, is the replacement hint reported as a
	// warning for this variant.
	Deprecated string
}

type variantEntry[V Variant] struct {
	def  VariantDef[V]
	tag  string
	kind reflect.Type
}

// VariantSet is the closed, ordered set of variants of a compound property.
type VariantSet[V Variant] struct {
	typeName string
	entries  []variantEntry[V]
}

// NewVariantSet builds a set. Several variants may share a tag; decoding a
// tag yields the first one declared.
func NewVariantSet[V Variant](typeName string, defs ...VariantDef[V]) *VariantSet[V] {
	s := &VariantSet[V]{typeName: typeName}
	seen := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		if _, dup := seen[d.Name]; dup {
			panic(fmt.Sprintf("props: variant set %s declares '%s' twice", typeName, d.Name))
		}
		seen[d.Name] = struct{}{}
		proto := d.New()
		s.entries = append(s.entries, variantEntry[V]{def: d, tag: proto.Tag(), kind: reflect.TypeOf(proto)})
	}
	return s
}

// TypeName returns the name of the variant family.
func (s *VariantSet[V]) TypeName() string { return s.typeName }

// Names returns the DSL names in declaration order.
func (s *VariantSet[V]) Names() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.def.Name
	}
	return out
}

// New constructs a detached variant by DSL name.
func (s *VariantSet[V]) New(name string) (V, bool) {
	for _, e := range s.entries {
		if e.def.Name == name {
			return e.def.New(), true
		}
	}
	var zero V
	return zero, false
}

// ByTag constructs a detached variant for a discriminator value.
func (s *VariantSet[V]) ByTag(tag string) (V, bool) {
	for _, e := range s.entries {
		if e.tag == tag {
			return e.def.New(), true
		}
	}
	var zero V
	return zero, false
}

func (s *VariantSet[V]) entryOf(v V) (variantEntry[V], bool) {
	t := reflect.TypeOf(v)
	for _, e := range s.entries {
		if e.kind == t {
			return e, true
		}
	}
	return variantEntry[V]{}, false
}

// NameOf returns the DSL name of v.
func (s *VariantSet[V]) NameOf(v V) string {
	if e, ok := s.entryOf(v); ok {
		return e.def.Name
	}
	return ""
}

// Deprecation returns the replacement hint for v, or "" when v is current.
func (s *VariantSet[V]) Deprecation(v V) string {
	if e, ok := s.entryOf(v); ok {
		return e.def.Deprecated
	}
	return ""
}

// CompoundField is the untyped view of a Compound, used by loaders and
// emitters that work with variant names.
type CompoundField interface {
	Field
	VariantNames() []string
	NewVariant(name string) (Variant, bool)
	GetVariant() (Variant, bool, error)
	SetVariant(v Variant) error
	VariantName(v Variant) string
}

// Compound is a tagged-variant property. The discriminator is written under
// the property's key; the active variant's sub-fields live flat in the same
// store.
//
// Switching to another variant does not remove keys written by the previous
// one. Those keys stay in the store and are ignored by the new variant.
type Compound[V Variant] struct {
	bag       *Bag
	name, key string
	set       *VariantSet[V]

	current V
	bound   bool
}

func (c *Compound[V]) Name() string { return c.name }
func (c *Compound[V]) Key() string { return c.key }
func (c *Compound[V]) Kind() Kind { return KindCompound }
func (c *Compound[V]) Variants() *VariantSet[V] { return c.set }
func (c *Compound[V]) VariantNames() []string { return c.set.Names() }

// Get returns the active variant bound to the owner's store. The variant
// object that was last set is returned as long as its tag is still the stored
// discriminator; otherwise a new one is constructed from the tag.
func (c *Compound[V]) Get() (V, bool, error) {
	var zero V
	store := c.bag.store
	tag, ok := store.Get(c.key)
	if !ok {
		return zero, false, nil
	}
	if c.bound && c.current.Tag() == tag && c.current.Bag().Store() == store {
		return c.current, true, nil
	}
	v, ok := c.set.ByTag(tag)
	if !ok {
		return zero, false, &DecodeError{Key: c.key, Value: tag, Type: c.set.typeName}
	}
	v.Bag().Rebind(store)
	c.current, c.bound = v, true
	return v, true, nil
}

// Set activates v: the discriminator is written, v's pending sub-fields are
// copied into the owner's store and v is rebound to it. Setting a nil
// variant is the same as Clear.
func (c *Compound[V]) Set(v V) {
	if isNil(v) {
		c.Clear()
		return
	}
	store := c.bag.store
	store.Set(c.key, v.Tag())
	if vs := v.Bag().Store(); vs != store {
		copyDeclared(store, vs, v.Bag())
	}
	v.Bag().Rebind(store)
	c.current, c.bound = v, true
}

// Clear removes the discriminator. Sub-field keys are left untouched.
func (c *Compound[V]) Clear() {
	c.bag.store.Remove(c.key)
	var zero V
	c.current, c.bound = zero, false
}

// IsSet reports whether the discriminator key is present.
func (c *Compound[V]) IsSet() bool {
	return c.bag.store.Has(c.key)
}

func (c *Compound[V]) rebind() {
	if c.bound {
		c.current.Bag().Rebind(c.bag.store)
	}
}

// NewVariant implements CompoundField.
func (c *Compound[V]) NewVariant(name string) (Variant, bool) {
	v, ok := c.set.New(name)
	if !ok {
		return nil, false
	}
	return v, true
}

// GetVariant implements CompoundField.
func (c *Compound[V]) GetVariant() (Variant, bool, error) {
	v, ok, err := c.Get()
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

// SetVariant implements CompoundField.
func (c *Compound[V]) SetVariant(v Variant) error {
	typed, ok := v.(V)
	if !ok {
		return fmt.Errorf("%T is not a variant of %s", v, c.set.typeName)
	}
	c.Set(typed)
	return nil
}

// VariantName implements CompoundField.
func (c *Compound[V]) VariantName(v Variant) string {
	typed, ok := v.(V)
	if !ok {
		return ""
	}
	return c.set.NameOf(typed)
}

// ValidateActive delegates validation to the active variant of c, if any.
// A discriminator that cannot be decoded is reported as an error at path.
// Deprecated variants produce a warning at path.
func ValidateActive[V Variant](cons validate.Consumer, path string, c *Compound[V]) {
	v, ok, err := c.Get()
	if err != nil {
		cons.PropertyError(path, err.Error())
		return
	}
	if !ok {
		return
	}
	if hint := c.set.Deprecation(v); hint != "" {
		cons.PropertyWarning(path, fmt.Sprintf("'%s' is deprecated: %s", c.set.NameOf(v), hint))
	}
	if val, ok := any(v).(validate.Validatable); ok {
		val.Validate(cons)
	}
}

// copyDeclared copies the keys declared on bag, and on the active variants of
// its nested compounds, from src to dst. Only declared keys move, so a variant
// read from one entity and set on another does not drag the rest of the
// first entity's store along.
func copyDeclared(dst, src *params.Store, bag *Bag) {
	for _, f := range bag.fields {
		if v, ok := src.Get(f.Key()); ok {
			dst.Set(f.Key(), v)
		}
		if cf, ok := f.(interface{ activeBag() (*Bag, bool) }); ok {
			if nested, ok := cf.activeBag(); ok {
				copyDeclared(dst, src, nested)
			}
		}
	}
}

func (c *Compound[V]) activeBag() (*Bag, bool) {
	v, ok, err := c.Get()
	if err != nil || !ok {
		return nil, false
	}
	return v.Bag(), true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
