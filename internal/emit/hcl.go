package emit

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// HCL renders projects as a definition file. Typed properties are written
// as attributes and variant blocks; parameters no property accounts for,
// such as keys left behind by an earlier variant, go to the params map so
// that loading the output reproduces every store.
func HCL(projects []*model.Project, reg *registry.Registry) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, p := range projects {
		if i > 0 {
			root.AppendNewline()
		}
		pb := root.AppendNewBlock("project", []string{p.ID}).Body()
		if p.Name != "" {
			pb.SetAttributeValue("name", cty.StringVal(p.Name))
		}
		for _, feature := range p.Features.Items() {
			pb.AppendNewline()
			if err := writeEntity(pb, "feature", feature, reg); err != nil {
				return nil, err
			}
		}

		for _, bt := range p.BuildTypes() {
			pb.AppendNewline()
			bb := pb.AppendNewBlock("buildType", []string{bt.ID}).Body()
			if bt.Name != "" {
				bb.SetAttributeValue("name", cty.StringVal(bt.Name))
			}
			for _, s := range bt.Steps.Items() {
				bb.AppendNewline()
				if err := writeEntity(bb, "step", s, reg); err != nil {
					return nil, err
				}
			}
			for _, feature := range bt.Features.Items() {
				bb.AppendNewline()
				if err := writeEntity(bb, "feature", feature, reg); err != nil {
					return nil, err
				}
			}
		}
	}
	return hclwrite.Format(f.Bytes()), nil
}

func writeEntity(parent *hclwrite.Body, blockType string, e model.Configurable, reg *registry.Registry) error {
	def, ok := reg.DefinitionOf(e)
	if !ok {
		return fmt.Errorf("no registered definition for %s entity %T", blockType, e)
	}
	core := e.Core()
	body := parent.AppendNewBlock(blockType, []string{def.Name}).Body()

	if core.ID != "" {
		body.SetAttributeValue("id", cty.StringVal(core.ID))
	}
	var conditions []model.Condition
	switch v := e.(type) {
	case model.Step:
		base := v.StepBase()
		if base.Name != "" {
			body.SetAttributeValue("name", cty.StringVal(base.Name))
		}
		if !base.Enabled {
			body.SetAttributeValue("enabled", cty.False)
		}
		conditions = base.Conditions.Items()
	case model.Feature:
		if !v.FeatureBase().Enabled {
			body.SetAttributeValue("enabled", cty.False)
		}
	}

	covered := constructorParams(def)
	writeFields(body, core.Bag(), covered)

	for _, c := range conditions {
		cb := body.AppendNewBlock("condition", []string{string(c.Op)}).Body()
		cb.SetAttributeValue("name", cty.StringVal(c.Name))
		if c.Value != "" || !c.Op.Unary() {
			cb.SetAttributeValue("value", cty.StringVal(c.Value))
		}
	}

	var rest []hclwrite.ObjectAttrTokens
	core.Params().Each(func(key, value string) {
		if v, ok := covered[key]; ok && v == value {
			return
		}
		rest = append(rest, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForValue(cty.StringVal(key)),
			Value: hclwrite.TokensForValue(cty.StringVal(value)),
		})
	})
	if len(rest) > 0 {
		body.SetAttributeRaw("params", hclwrite.TokensForObject(rest))
	}
	return nil
}

// constructorParams returns the parameters a fresh entity of def already
// carries. They need not be written since loading recreates them.
func constructorParams(def *registry.Definition) map[string]string {
	return def.New().Core().Params().Map()
}

// writeFields writes every set property of bag and marks the keys it wrote
// in covered. Values that cannot be decoded are skipped and end up in the
// params map instead.
func writeFields(body *hclwrite.Body, bag *props.Bag, covered map[string]string) {
	store := bag.Store()
	cover := func(key string) {
		v, _ := store.Get(key)
		covered[key] = v
	}

	for _, f := range bag.Fields() {
		if !f.IsSet() {
			continue
		}
		switch field := f.(type) {
		case *props.String:
			body.SetAttributeValue(f.Name(), cty.StringVal(field.Value()))
			cover(f.Key())
		case *props.Bool:
			v, _ := field.Get()
			if raw, _ := store.Get(f.Key()); field.Codec().Encode(v) != raw {
				continue
			}
			body.SetAttributeValue(f.Name(), cty.BoolVal(v))
			cover(f.Key())
		case props.CompoundField:
			v, ok, err := field.GetVariant()
			if err != nil || !ok {
				continue
			}
			vb := body.AppendNewBlock(f.Name(), []string{field.VariantName(v)}).Body()
			cover(f.Key())
			writeFields(vb, v.Bag(), covered)
		case props.EnumField:
			name, ok, err := field.GetName()
			if err != nil || !ok {
				continue
			}
			body.SetAttributeValue(f.Name(), cty.StringVal(name))
			cover(f.Key())
		}
	}
}
