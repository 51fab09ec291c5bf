package hcl_adapter

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/stepconf/internal/config"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "project", LabelNames: []string{"id"}},
	},
}

var projectSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "name"}},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "feature", LabelNames: []string{"type"}},
		{Type: "buildType", LabelNames: []string{"id"}},
	},
}

var buildTypeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "name"}},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "step", LabelNames: []string{"type"}},
		{Type: "feature", LabelNames: []string{"type"}},
	},
}

var conditionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "name"}, {Name: "value"}},
}

// entitySchema builds the body schema of an entity of kind: the reserved
// attributes of the kind followed by every property declared on bag.
func entitySchema(kind registry.Kind, bag *props.Bag) *hcl.BodySchema {
	s := &hcl.BodySchema{}
	for _, name := range registry.ReservedNames(kind) {
		if name == "condition" {
			s.Blocks = append(s.Blocks, hcl.BlockHeaderSchema{Type: name, LabelNames: []string{"op"}})
			continue
		}
		s.Attributes = append(s.Attributes, hcl.AttributeSchema{Name: name})
	}
	addFields(s, bag)
	return s
}

// variantSchema builds the body schema of a compound block.
func variantSchema(bag *props.Bag) *hcl.BodySchema {
	s := &hcl.BodySchema{}
	addFields(s, bag)
	return s
}

func addFields(s *hcl.BodySchema, bag *props.Bag) {
	for _, f := range bag.Fields() {
		if f.Kind() == props.KindCompound {
			s.Blocks = append(s.Blocks, hcl.BlockHeaderSchema{Type: f.Name(), LabelNames: []string{"variant"}})
			continue
		}
		s.Attributes = append(s.Attributes, hcl.AttributeSchema{Name: f.Name()})
	}
}

func originOf(r hcl.Range) config.Origin {
	return config.Origin{
		Filename: r.Filename,
		Start:    config.Pos{Line: r.Start.Line, Column: r.Start.Column, Byte: r.Start.Byte},
		End:      config.Pos{Line: r.End.Line, Column: r.End.Column, Byte: r.End.Byte},
	}
}

func quoted(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}
