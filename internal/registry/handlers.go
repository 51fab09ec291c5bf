package registry

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Register adds a definition. Registering the same kind and name twice is a
// programming error and panics.
func (r *Registry) Register(d Definition) {
	key := defKey{d.Kind, d.Name}
	if _, exists := r.defs[key]; exists {
		panic(fmt.Sprintf("%s definition with name '%s' already registered", d.Kind, d.Name))
	}
	if d.New == nil {
		panic(fmt.Sprintf("%s definition '%s' has no constructor", d.Kind, d.Name))
	}
	slog.Debug("Registering entity definition.", "kind", d.Kind, "name", d.Name, "type", d.Type)
	r.defs[key] = &d
	if t := reflect.TypeOf(d.New()); r.byGoType[t] == nil {
		r.byGoType[t] = &d
	}
}

// RegisterModules registers every module in order.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}
