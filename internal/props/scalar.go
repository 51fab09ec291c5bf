package props

// String is a plain string property.
type String struct {
	bag       *Bag
	name, key string
}

func (f *String) Name() string { return f.name }
func (f *String) Key() string { return f.key }
func (f *String) Kind() Kind { return KindString }

// Get returns the stored value and whether the key is present.
func (f *String) Get() (string, bool) {
	return f.bag.store.Get(f.key)
}

// Value returns the stored value, or "" when unset.
func (f *String) Value() string {
	v, _ := f.Get()
	return v
}

// Set writes v, including the empty string.
func (f *String) Set(v string) {
	f.bag.store.Set(f.key, v)
}

// Clear removes the key.
func (f *String) Clear() {
	f.bag.store.Remove(f.key)
}

// IsSet reports whether the key is present.
func (f *String) IsSet() bool {
	return f.bag.store.Has(f.key)
}

// BoolCodec holds the wire strings for true and false.
type BoolCodec struct {
	True  string
	False string
}

var (
	// DefaultBool is used when a property does not override its encoding.
	DefaultBool = BoolCodec{True: "true", False: "false"}
	// TrueOrEmpty stores false as an empty string.
	TrueOrEmpty = BoolCodec{True: "true", False: ""}
)

// Encode returns the wire string for v.
func (c BoolCodec) Encode(v bool) string {
	if v {
		return c.True
	}
	return c.False
}

// Decode treats anything other than the true string as false.
func (c BoolCodec) Decode(s string) bool {
	return s == c.True
}

// Bool is a boolean property. Set(false) writes the false string even when it
// is empty, so an explicit false stays distinguishable from never set; only
// Clear makes the key absent.
type Bool struct {
	bag       *Bag
	name, key string
	codec     BoolCodec
}

func (f *Bool) Name() string { return f.name }
func (f *Bool) Key() string { return f.key }
func (f *Bool) Kind() Kind { return KindBool }
func (f *Bool) Codec() BoolCodec { return f.codec }

// Get returns the decoded value and whether the key is present.
func (f *Bool) Get() (bool, bool) {
	s, ok := f.bag.store.Get(f.key)
	if !ok {
		return false, false
	}
	return f.codec.Decode(s), true
}

// Set encodes and writes v.
func (f *Bool) Set(v bool) {
	f.bag.store.Set(f.key, f.codec.Encode(v))
}

// Clear removes the key.
func (f *Bool) Clear() {
	f.bag.store.Remove(f.key)
}

// IsSet reports whether the key is present.
func (f *Bool) IsSet() bool {
	return f.bag.store.Has(f.key)
}
