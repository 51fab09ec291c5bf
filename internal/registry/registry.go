package registry

import (
	"reflect"
	"sort"

	"github.com/vk/stepconf/internal/model"
)

// Kind tells which collection an entity is registered into.
type Kind string

const (
	KindStep           Kind = "step"
	KindFeature        Kind = "feature"
	KindProjectFeature Kind = "projectFeature"
)

// Definition describes one registered entity.
type Definition struct {
	Kind Kind
	// Name is the DSL name used in definition files, e.g. "dockerCommand".
	Name string
	// Type is the wire type string the constructed entity carries.
	Type        string
	Description string
	// New returns a fresh, detached entity.
	New func() model.Configurable
}

// Module is the interface that every entity package implements to be
// registered.
type Module interface {
	Register(r *Registry)
}

type defKey struct {
	kind Kind
	name string
}

// Registry holds the entity definitions for a single application instance.
type Registry struct {
	defs map[defKey]*Definition
	// byGoType maps the Go type a constructor returns to its definition.
	byGoType map[reflect.Type]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		defs:     make(map[defKey]*Definition),
		byGoType: make(map[reflect.Type]*Definition),
	}
}

// Lookup finds the definition of kind registered under name.
func (r *Registry) Lookup(kind Kind, name string) (*Definition, bool) {
	d, ok := r.defs[defKey{kind, name}]
	return d, ok
}

// DefinitionOf finds the definition whose constructor builds entities of the
// same Go type as e. Emitters use it to map an entity back to its DSL name.
func (r *Registry) DefinitionOf(e model.Configurable) (*Definition, bool) {
	d, ok := r.byGoType[reflect.TypeOf(e)]
	return d, ok
}

// Definitions returns every definition ordered by kind, then name.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return kindOrder(out[i].Kind) < kindOrder(out[j].Kind)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the sorted DSL names registered for kind.
func (r *Registry) Names(kind Kind) []string {
	var out []string
	for k := range r.defs {
		if k.kind == kind {
			out = append(out, k.name)
		}
	}
	sort.Strings(out)
	return out
}

func kindOrder(k Kind) int {
	switch k {
	case KindStep:
		return 0
	case KindFeature:
		return 1
	default:
		return 2
	}
}
