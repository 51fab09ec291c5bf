package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/stepconf/internal/config"
	"github.com/vk/stepconf/internal/ctxlog"
	"github.com/vk/stepconf/internal/hclutil"
	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/registry"
)

// decoder translates the blocks of one load run into model objects and
// records where each piece was defined.
type decoder struct {
	registry *registry.Registry
	model    *config.Model
}

func (d *decoder) translateProject(ctx context.Context, block *hcl.Block) (*model.Project, hcl.Diagnostics) {
	p := model.NewProject(block.Labels[0], nil)
	scope := p.Scope()
	d.model.SetOrigin(scope, "", originOf(block.DefRange))
	d.model.SetOrigin(scope, "id", originOf(block.LabelRanges[0]))

	content, diags := block.Body.Content(projectSchema)
	if attr, ok := content.Attributes["name"]; ok {
		d.model.SetOrigin(scope, "name", originOf(attr.Range))
		name, _, ds := attrString(attr)
		diags = append(diags, ds...)
		p.Name = name
	}

	for _, b := range content.Blocks {
		switch b.Type {
		case "feature":
			fscope := scope + "/" + model.FeatureScope(p.Features.Len())
			e, ds := d.translateEntity(ctx, registry.KindProjectFeature, b, fscope)
			diags = append(diags, ds...)
			if f, ok := e.(model.ProjectFeatureEntity); ok {
				p.Features.Feature(f)
			}
		case "buildType":
			bt, ds := d.translateBuildType(ctx, b, scope, len(p.BuildTypes()))
			diags = append(diags, ds...)
			p.BuildType(bt)
		}
	}

	ctxlog.FromContext(ctx).Debug("Translated project.", "project", scope, "buildTypes", len(p.BuildTypes()), "features", p.Features.Len())
	return p, diags
}

func (d *decoder) translateBuildType(ctx context.Context, block *hcl.Block, projectScope string, index int) (*model.BuildType, hcl.Diagnostics) {
	bt := model.NewBuildType(block.Labels[0], nil)
	scope := projectScope + "/" + model.BuildTypeScope(bt, index)
	d.model.SetOrigin(scope, "", originOf(block.DefRange))
	d.model.SetOrigin(scope, "id", originOf(block.LabelRanges[0]))

	content, diags := block.Body.Content(buildTypeSchema)
	if attr, ok := content.Attributes["name"]; ok {
		d.model.SetOrigin(scope, "name", originOf(attr.Range))
		name, _, ds := attrString(attr)
		diags = append(diags, ds...)
		bt.Name = name
	}

	for _, b := range content.Blocks {
		switch b.Type {
		case "step":
			sscope := scope + "/" + model.StepScope(bt.Steps.Len())
			e, ds := d.translateEntity(ctx, registry.KindStep, b, sscope)
			diags = append(diags, ds...)
			if s, ok := e.(model.Step); ok {
				bt.Steps.Step(s)
			}
		case "feature":
			fscope := scope + "/" + model.FeatureScope(bt.Features.Len())
			e, ds := d.translateEntity(ctx, registry.KindFeature, b, fscope)
			diags = append(diags, ds...)
			if f, ok := e.(model.Feature); ok {
				bt.Features.Feature(f)
			}
		}
	}
	return bt, diags
}

// translateEntity creates the registered entity named by the block label and
// decodes the block body into it. It returns nil when the type is unknown.
func (d *decoder) translateEntity(ctx context.Context, kind registry.Kind, block *hcl.Block, scope string) (model.Configurable, hcl.Diagnostics) {
	name := block.Labels[0]
	def, ok := d.registry.Lookup(kind, name)
	if !ok {
		return nil, hcl.Diagnostics{hclutil.LabelError(block,
			fmt.Sprintf("Unsupported %s type", kind),
			fmt.Sprintf("There is no %s named %q. Supported types are: %s.", kind, name, quoted(d.registry.Names(kind))),
		)}
	}

	entity := def.New()
	core := entity.Core()
	d.model.SetOrigin(scope, "", originOf(block.DefRange))
	ctxlog.FromContext(ctx).Debug("Translating entity.", "kind", kind, "name", name, "scope", scope)

	content, diags := block.Body.Content(entitySchema(kind, core.Bag()))

	if attr, ok := content.Attributes["id"]; ok {
		d.model.SetOrigin(scope, "id", originOf(attr.Range))
		id, _, ds := attrString(attr)
		diags = append(diags, ds...)
		core.ID = id
	}

	switch e := entity.(type) {
	case model.Step:
		diags = append(diags, d.translateStepBase(e.StepBase(), content, scope)...)
	case model.Feature:
		if attr, ok := content.Attributes["enabled"]; ok {
			d.model.SetOrigin(scope, "enabled", originOf(attr.Range))
			enabled, set, ds := attrBool(attr)
			diags = append(diags, ds...)
			if set {
				e.FeatureBase().Enabled = enabled
			}
		}
	}

	diags = append(diags, d.translateFields(scope, "", core.Bag(), content)...)

	if attr, ok := content.Attributes["params"]; ok {
		d.model.SetOrigin(scope, "params", originOf(attr.Range))
		pairs, ds := attrParams(attr)
		diags = append(diags, ds...)
		for _, kv := range pairs {
			core.Param(kv[0], kv[1])
		}
	}
	return entity, diags
}

func (d *decoder) translateStepBase(s *model.BuildStep, content *hcl.BodyContent, scope string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if attr, ok := content.Attributes["name"]; ok {
		d.model.SetOrigin(scope, "name", originOf(attr.Range))
		name, _, ds := attrString(attr)
		diags = append(diags, ds...)
		s.Name = name
	}
	if attr, ok := content.Attributes["enabled"]; ok {
		d.model.SetOrigin(scope, "enabled", originOf(attr.Range))
		enabled, set, ds := attrBool(attr)
		diags = append(diags, ds...)
		if set {
			s.Enabled = enabled
		}
	}

	for _, b := range content.Blocks {
		if b.Type != "condition" {
			continue
		}
		op, err := model.ParseConditionOp(b.Labels[0])
		if err != nil {
			diags = append(diags, hclutil.LabelError(b, "Unsupported condition", err.Error()))
			continue
		}
		path := fmt.Sprintf("conditions[%d]", s.Conditions.Len())
		d.model.SetOrigin(scope, path, originOf(b.DefRange))

		body, ds := b.Body.Content(conditionSchema)
		diags = append(diags, ds...)
		var name, value string
		if attr, ok := body.Attributes["name"]; ok {
			d.model.SetOrigin(scope, path+".name", originOf(attr.Range))
			name, _, ds = attrString(attr)
			diags = append(diags, ds...)
		}
		if attr, ok := body.Attributes["value"]; ok {
			d.model.SetOrigin(scope, path+".value", originOf(attr.Range))
			value, _, ds = attrString(attr)
			diags = append(diags, ds...)
		}
		s.Conditions.Add(op, name, value)
	}
	return diags
}

// translateFields decodes every property declared on bag, in declaration
// order, so the store receives keys in a stable order whatever the layout
// of the file.
func (d *decoder) translateFields(scope, prefix string, bag *props.Bag, content *hcl.BodyContent) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, f := range bag.Fields() {
		path := prefix + f.Name()

		if cf, ok := f.(props.CompoundField); ok {
			block, ds := hclutil.FindUniqueBlock(content.Blocks, f.Name())
			diags = append(diags, ds...)
			if block != nil {
				diags = append(diags, d.translateVariant(scope, path, cf, block)...)
			}
			continue
		}

		attr, ok := content.Attributes[f.Name()]
		if !ok {
			continue
		}
		d.model.SetOrigin(scope, path, originOf(attr.Range))
		diags = append(diags, assignAttr(f, attr)...)
	}
	return diags
}

func (d *decoder) translateVariant(scope, path string, field props.CompoundField, block *hcl.Block) hcl.Diagnostics {
	name := block.Labels[0]
	v, ok := field.NewVariant(name)
	if !ok {
		return hcl.Diagnostics{hclutil.LabelError(block,
			"Unsupported variant",
			fmt.Sprintf("%q is not a variant of %q. Supported variants are: %s.", name, path, quoted(field.VariantNames())),
		)}
	}
	d.model.SetOrigin(scope, path, originOf(block.DefRange))

	content, diags := block.Body.Content(variantSchema(v.Bag()))
	diags = append(diags, d.translateFields(scope, path+".", v.Bag(), content)...)
	if err := field.SetVariant(v); err != nil {
		diags = append(diags, hclutil.LabelError(block, "Invalid variant", err.Error()))
	}
	return diags
}

// assignAttr writes the value of attr through f. Null values leave the
// property absent.
func assignAttr(f props.Field, attr *hcl.Attribute) hcl.Diagnostics {
	switch field := f.(type) {
	case *props.String:
		s, set, diags := attrString(attr)
		if set && !diags.HasErrors() {
			field.Set(s)
		}
		return diags
	case *props.Bool:
		b, set, diags := attrBool(attr)
		if set && !diags.HasErrors() {
			field.Set(b)
		}
		return diags
	case props.EnumField:
		s, set, diags := attrString(attr)
		if !set || diags.HasErrors() {
			return diags
		}
		if err := field.SetName(s); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid value",
				Detail:   fmt.Sprintf("%q is not a valid value for %q. Supported values are: %s.", s, attr.Name, quoted(field.Names())),
				Subject:  attr.Expr.Range().Ptr(),
			})
		}
		return diags
	default:
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported property",
			Detail:   fmt.Sprintf("Property %q of kind %s cannot be set from an attribute.", attr.Name, f.Kind()),
			Subject:  &attr.Range,
		}}
	}
}
