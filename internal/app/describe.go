package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
)

// Describe writes the registered entity types with their properties. With a
// name, only the definitions whose DSL name or wire type equals it are
// written.
func (a *App) Describe(name string) error {
	var defs []*registry.Definition
	for _, d := range a.registry.Definitions() {
		if name == "" || d.Name == name || d.Type == name {
			defs = append(defs, d)
		}
	}
	if len(defs) == 0 {
		return fmt.Errorf("unknown entity type '%s'", name)
	}

	for i, d := range defs {
		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		if err := describeDefinition(a.outW, d, name != ""); err != nil {
			return err
		}
	}
	return nil
}

func describeDefinition(w io.Writer, d *registry.Definition, withFields bool) error {
	fmt.Fprintf(w, "%s %s (%s)\n", d.Kind, d.Name, d.Type)
	if d.Description != "" {
		fmt.Fprintf(w, "  %s\n", d.Description)
	}
	if !withFields {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tKEY\tKIND\tVALUES")
	describeFields(tw, d.New().Core().Bag(), "  ")
	return tw.Flush()
}

func describeFields(w io.Writer, bag *props.Bag, indent string) {
	for _, f := range bag.Fields() {
		var values []string
		switch field := f.(type) {
		case props.CompoundField:
			values = field.VariantNames()
		case props.EnumField:
			values = field.Names()
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", indent, f.Name(), f.Key(), f.Kind(), strings.Join(values, ", "))

		cf, ok := f.(props.CompoundField)
		if !ok {
			continue
		}
		for _, vname := range cf.VariantNames() {
			v, _ := cf.NewVariant(vname)
			if len(v.Bag().Fields()) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s  %s:\t\t\t\n", indent, vname)
			describeFields(w, v.Bag(), indent+"    ")
		}
	}
}
