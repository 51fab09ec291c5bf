// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the containers entities are registered into: the ordered
// entity collections, BuildType and Project.
//
// Collection order is meaningful. For steps it is the execution order; for
// features it is the order they were declared in. Validation walks the whole
// tree and labels every problem with the scope of the entity it belongs to,
// e.g. "MyProject/Build/steps[0]".
package model

import (
	"fmt"

	"github.com/vk/stepconf/internal/validate"
)

// BuildSteps is the ordered list of steps of a build type.
type BuildSteps struct {
	owner string
	items []Step
}

// Step appends s. It panics when s already belongs to a collection.
func (c *BuildSteps) Step(s Step) {
	s.Core().claim(c.label("steps"))
	c.items = append(c.items, s)
}

// Items returns the steps in execution order.
func (c *BuildSteps) Items() []Step {
	out := make([]Step, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of steps.
func (c *BuildSteps) Len() int { return len(c.items) }

func (c *BuildSteps) label(kind string) string {
	if c.owner == "" {
		return kind
	}
	return c.owner + "/" + kind
}

// BuildFeatures is the ordered list of features of a build type.
type BuildFeatures struct {
	owner string
	items []Feature
}

// Feature appends f. It panics when f already belongs to a collection.
func (c *BuildFeatures) Feature(f Feature) {
	label := "features"
	if c.owner != "" {
		label = c.owner + "/" + label
	}
	f.Core().claim(label)
	c.items = append(c.items, f)
}

// Items returns the features in declaration order.
func (c *BuildFeatures) Items() []Feature {
	out := make([]Feature, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of features.
func (c *BuildFeatures) Len() int { return len(c.items) }

// ProjectFeatures is the ordered list of features of a project.
type ProjectFeatures struct {
	owner string
	items []ProjectFeatureEntity
}

// Feature appends f. It panics when f already belongs to a collection.
func (c *ProjectFeatures) Feature(f ProjectFeatureEntity) {
	label := "features"
	if c.owner != "" {
		label = c.owner + "/" + label
	}
	f.Core().claim(label)
	c.items = append(c.items, f)
}

// Items returns the features in declaration order.
func (c *ProjectFeatures) Items() []ProjectFeatureEntity {
	out := make([]ProjectFeatureEntity, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of features.
func (c *ProjectFeatures) Len() int { return len(c.items) }

// BuildType is a build configuration: an ordered list of steps plus the
// features applied to them.
type BuildType struct {
	ID       string
	Name     string
	Steps    BuildSteps
	Features BuildFeatures

	owned bool
}

// NewBuildType creates a build type and runs configure on it.
func NewBuildType(id string, configure func(bt *BuildType)) *BuildType {
	bt := &BuildType{ID: id}
	bt.Steps.owner = id
	bt.Features.owner = id
	if configure != nil {
		configure(bt)
	}
	return bt
}

// Validate walks the build type: its own identifier, every step, every
// feature, then duplicate step identifiers.
func (bt *BuildType) Validate(c validate.Consumer) {
	ValidateID(c, "id", bt.ID)

	firstUse := make(map[string]int, len(bt.Steps.items))
	for i, s := range bt.Steps.items {
		sc := validate.Scoped(c, StepScope(i))
		s.Validate(sc)

		id := s.Core().ID
		if id == "" {
			continue
		}
		if j, dup := firstUse[id]; dup {
			sc.PropertyError("id", fmt.Sprintf("duplicate step id '%s', already used by %s", id, StepScope(j)))
			continue
		}
		firstUse[id] = i
	}
	for i, f := range bt.Features.items {
		f.Validate(validate.Scoped(c, FeatureScope(i)))
	}
}

// Project groups build types and the project-level features.
type Project struct {
	ID         string
	Name       string
	Features   ProjectFeatures
	buildTypes []*BuildType
}

// NewProject creates a project and runs configure on it.
func NewProject(id string, configure func(p *Project)) *Project {
	p := &Project{ID: id}
	p.Features.owner = id
	if configure != nil {
		configure(p)
	}
	return p
}

// BuildType appends bt and returns it. It panics when bt already belongs to
// a project.
func (p *Project) BuildType(bt *BuildType) *BuildType {
	if bt.owned {
		panic(fmt.Sprintf("model: build type %q already belongs to a project, cannot add it to %q", bt.ID, p.ID))
	}
	bt.owned = true
	p.buildTypes = append(p.buildTypes, bt)
	return bt
}

// BuildTypes returns the build types in declaration order.
func (p *Project) BuildTypes() []*BuildType {
	out := make([]*BuildType, len(p.buildTypes))
	copy(out, p.buildTypes)
	return out
}

// Scope is the validation scope of p.
func (p *Project) Scope() string {
	if p.ID == "" {
		return "project"
	}
	return p.ID
}

// Validate walks the whole project. Every problem is scoped; a build type's
// problems are reported under "<project>/<buildType>".
func (p *Project) Validate(c validate.Consumer) {
	pc := validate.Scoped(c, p.Scope())
	ValidateID(pc, "id", p.ID)

	for i, f := range p.Features.items {
		f.Validate(validate.Scoped(pc, FeatureScope(i)))
	}

	firstUse := make(map[string]int, len(p.buildTypes))
	for i, bt := range p.buildTypes {
		btc := validate.Scoped(pc, BuildTypeScope(bt, i))
		bt.Validate(btc)

		if bt.ID == "" {
			continue
		}
		if j, dup := firstUse[bt.ID]; dup {
			btc.PropertyError("id", fmt.Sprintf("duplicate build type id '%s', already used by buildTypes[%d]", bt.ID, j))
			continue
		}
		firstUse[bt.ID] = i
	}
}

// BuildTypeScope is the scope label of the i-th build type of a project.
func BuildTypeScope(bt *BuildType, i int) string {
	if bt.ID == "" {
		return fmt.Sprintf("buildTypes[%d]", i)
	}
	return bt.ID
}

// StepScope is the scope label of the i-th step of a build type.
func StepScope(i int) string { return fmt.Sprintf("steps[%d]", i) }

// FeatureScope is the scope label of the i-th feature of a build type or
// project.
func FeatureScope(i int) string { return fmt.Sprintf("features[%d]", i) }
