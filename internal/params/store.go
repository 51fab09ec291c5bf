package params

// Param is a single key/value entry of a Store.
type Param struct {
	Name  string
	Value string
}

// Store is an ordered mapping from parameter keys to values. Overwriting a
// key keeps its original position. The zero value is not usable, call New.
type Store struct {
	index map[string]int
	items []Param
}

// New creates an empty Store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Set inserts the key or overwrites its value in place.
func (s *Store) Set(key, value string) {
	if i, ok := s.index[key]; ok {
		s.items[i].Value = value
		return
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, Param{Name: key, Value: value})
}

// Get returns the value stored under key and whether the key is present.
func (s *Store) Get(key string) (string, bool) {
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.items[i].Value, true
}

// Has reports whether key is present, even with an empty value.
func (s *Store) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Name] = j
	}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.items)
}

// Keys returns the keys in insertion order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.items))
	for i, p := range s.items {
		keys[i] = p.Name
	}
	return keys
}

// Params returns a copy of the entries in insertion order.
func (s *Store) Params() []Param {
	out := make([]Param, len(s.items))
	copy(out, s.items)
	return out
}

// Each calls fn for every entry in insertion order.
func (s *Store) Each(fn func(key, value string)) {
	for _, p := range s.items {
		fn(p.Name, p.Value)
	}
}

// Map returns the entries as an unordered map.
func (s *Store) Map() map[string]string {
	out := make(map[string]string, len(s.items))
	for _, p := range s.items {
		out[p.Name] = p.Value
	}
	return out
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := New()
	c.Merge(s)
	return c
}

// Merge copies every entry of other into s, in other's order. Entries of
// other win over existing ones.
func (s *Store) Merge(other *Store) {
	if other == nil || other == s {
		return
	}
	for _, p := range other.items {
		s.Set(p.Name, p.Value)
	}
}
