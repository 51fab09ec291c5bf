package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stepconf/internal/ctxlog"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
)

// ReservedNames returns the attribute names a definition file uses for the
// shared part of an entity of kind. Declared properties must not reuse them.
func ReservedNames(kind Kind) []string {
	switch kind {
	case KindStep:
		return []string{"id", "name", "enabled", "params", "condition"}
	case KindFeature:
		return []string{"id", "enabled", "params"}
	default:
		return []string{"id", "params"}
	}
}

// ValidateRegistry performs a strict parity check between the definitions
// and the entities their constructors return.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, def := range r.Definitions() {
		entity := def.New()
		if entity == nil {
			errs = append(errs, fmt.Sprintf("%s '%s': constructor returned nil", def.Kind, def.Name))
			continue
		}

		if got := entity.Core().Type(); got != def.Type {
			errs = append(errs, fmt.Sprintf("%s '%s': definition declares type '%s' but the entity carries '%s'", def.Kind, def.Name, def.Type, got))
		}

		if !implementsKind(entity, def.Kind) {
			errs = append(errs, fmt.Sprintf("%s '%s': %T cannot be added to a %s collection", def.Kind, def.Name, entity, def.Kind))
		}

		reserved := make(map[string]struct{})
		for _, n := range ReservedNames(def.Kind) {
			reserved[n] = struct{}{}
		}
		for _, f := range entity.Core().Bag().Fields() {
			if _, clash := reserved[f.Name()]; clash {
				errs = append(errs, fmt.Sprintf("%s '%s': property '%s' shadows a shared attribute", def.Kind, def.Name, f.Name()))
			}
			errs = append(errs, checkVariants(def, f)...)
		}

		logger.Debug("Validated entity definition.", "kind", def.Kind, "name", def.Name)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func implementsKind(e model.Configurable, kind Kind) bool {
	switch kind {
	case KindStep:
		_, ok := e.(model.Step)
		return ok
	case KindFeature:
		_, ok := e.(model.Feature)
		return ok
	case KindProjectFeature:
		_, ok := e.(model.ProjectFeatureEntity)
		return ok
	}
	return false
}

// checkVariants verifies that every variant of a compound property can be
// constructed by name, recursively.
func checkVariants(def *Definition, f props.Field) []string {
	cf, ok := f.(props.CompoundField)
	if !ok {
		return nil
	}
	var errs []string
	for _, name := range cf.VariantNames() {
		v, ok := cf.NewVariant(name)
		if !ok || v == nil {
			errs = append(errs, fmt.Sprintf("%s '%s': variant '%s' of '%s' cannot be constructed", def.Kind, def.Name, name, f.Name()))
			continue
		}
		for _, nested := range v.Bag().Fields() {
			errs = append(errs, checkVariants(def, nested)...)
		}
	}
	return errs
}
