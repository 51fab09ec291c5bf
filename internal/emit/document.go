package emit

import (
	"bytes"
	"encoding/json"

	"github.com/vk/stepconf/internal/model"
	"github.com/vk/stepconf/internal/params"
	"gopkg.in/yaml.v3"
)

// Document is the serialisable view of a set of projects.
type Document struct {
	Projects []ProjectDoc `json:"projects" yaml:"projects"`
}

type ProjectDoc struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Features   []EntityDoc    `json:"features,omitempty" yaml:"features,omitempty"`
	BuildTypes []BuildTypeDoc `json:"buildTypes,omitempty" yaml:"buildTypes,omitempty"`
}

type BuildTypeDoc struct {
	ID       string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Steps    []EntityDoc `json:"steps,omitempty" yaml:"steps,omitempty"`
	Features []EntityDoc `json:"features,omitempty" yaml:"features,omitempty"`
}

// EntityDoc describes one step or feature. Enabled is nil for project
// features, which cannot be disabled.
type EntityDoc struct {
	Type       string         `json:"type" yaml:"type"`
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Enabled    *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Conditions []ConditionDoc `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Params     Params         `json:"params,omitempty" yaml:"params,omitempty"`
}

type ConditionDoc struct {
	Op    string `json:"op" yaml:"op"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Params is an ordered parameter list that marshals as an object whose keys
// keep the store order.
type Params []params.Param

// MarshalJSON implements json.Marshaler.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Params) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}

// NewDocument builds the document of projects.
func NewDocument(projects []*model.Project) *Document {
	doc := &Document{Projects: make([]ProjectDoc, 0, len(projects))}
	for _, p := range projects {
		pd := ProjectDoc{ID: p.ID, Name: p.Name}
		for _, f := range p.Features.Items() {
			pd.Features = append(pd.Features, entityDoc(f))
		}
		for _, bt := range p.BuildTypes() {
			btd := BuildTypeDoc{ID: bt.ID, Name: bt.Name}
			for _, s := range bt.Steps.Items() {
				btd.Steps = append(btd.Steps, entityDoc(s))
			}
			for _, f := range bt.Features.Items() {
				btd.Features = append(btd.Features, entityDoc(f))
			}
			pd.BuildTypes = append(pd.BuildTypes, btd)
		}
		doc.Projects = append(doc.Projects, pd)
	}
	return doc
}

func entityDoc(e model.Configurable) EntityDoc {
	core := e.Core()
	d := EntityDoc{
		Type:   core.Type(),
		ID:     core.ID,
		Params: Params(core.Params().Params()),
	}
	switch v := e.(type) {
	case model.Step:
		base := v.StepBase()
		enabled := base.Enabled
		d.Name = base.Name
		d.Enabled = &enabled
		for _, c := range base.Conditions.Items() {
			d.Conditions = append(d.Conditions, ConditionDoc{Op: string(c.Op), Name: c.Name, Value: c.Value})
		}
	case model.Feature:
		enabled := v.FeatureBase().Enabled
		d.Enabled = &enabled
	}
	return d
}
