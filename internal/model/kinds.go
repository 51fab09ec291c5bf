// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the three entity kinds: build steps, build features and
// project features.
package model

import (
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// ExecutionMode decides when a step runs relative to the outcome of the
// steps before it.
type ExecutionMode string

const (
	ModeDefault      ExecutionMode = "DEFAULT"
	ModeRunOnSuccess ExecutionMode = "RUN_ON_SUCCESS"
	ModeRunOnFailure ExecutionMode = "RUN_ON_FAILURE"
	ModeAlways       ExecutionMode = "ALWAYS"
)

// ExecutionModes is the wire mapping of ExecutionMode.
var ExecutionModes = props.NewEnumTable("ExecutionMode",
	props.EnumEntry[ExecutionMode]{Value: ModeDefault, Name: "DEFAULT", Wire: "default"},
	props.EnumEntry[ExecutionMode]{Value: ModeRunOnSuccess, Name: "RUN_ON_SUCCESS", Wire: "execute_if_success"},
	props.EnumEntry[ExecutionMode]{Value: ModeRunOnFailure, Name: "RUN_ON_FAILURE", Wire: "execute_if_failed"},
	props.EnumEntry[ExecutionMode]{Value: ModeAlways, Name: "ALWAYS", Wire: "execute_always"},
)

// Step is implemented by every concrete build step.
type Step interface {
	Configurable
	StepBase() *BuildStep
}

// BuildStep is the part shared by all build steps.
type BuildStep struct {
	*Entity

	Name string
	// Enabled defaults to true.
	Enabled       bool
	ExecutionMode *props.Enum[ExecutionMode]
	Conditions    Conditions
}

// NewBuildStep creates an enabled step of the given type.
func NewBuildStep(typ string) *BuildStep {
	e := NewEntity(typ)
	return &BuildStep{
		Entity:        e,
		Enabled:       true,
		ExecutionMode: props.EnumOf(e.Bag(), "executionMode", "teamcity.step.mode", ExecutionModes),
	}
}

// StepBase implements Step.
func (s *BuildStep) StepBase() *BuildStep { return s }

// CopyFrom copies everything base holds into s, including its name, state
// and conditions.
func (s *BuildStep) CopyFrom(base *BuildStep) {
	if base == nil {
		return
	}
	s.Entity.CopyFrom(base.Entity)
	s.Name = base.Name
	s.Enabled = base.Enabled
	s.Conditions.items = base.Conditions.Items()
}

// Validate checks the entity core and the conditions. Concrete steps call it
// before their own checks.
func (s *BuildStep) Validate(c validate.Consumer) {
	s.Entity.Validate(c)
	s.Conditions.Validate(c)
}

// Feature is implemented by every concrete build feature.
type Feature interface {
	Configurable
	FeatureBase() *BuildFeature
}

// BuildFeature is the part shared by all build features.
type BuildFeature struct {
	*Entity

	// Enabled defaults to true.
	Enabled bool
}

// NewBuildFeature creates an enabled feature of the given type.
func NewBuildFeature(typ string) *BuildFeature {
	return &BuildFeature{Entity: NewEntity(typ), Enabled: true}
}

// FeatureBase implements Feature.
func (f *BuildFeature) FeatureBase() *BuildFeature { return f }

// CopyFrom copies the parameters and state of base into f.
func (f *BuildFeature) CopyFrom(base *BuildFeature) {
	if base == nil {
		return
	}
	f.Entity.CopyFrom(base.Entity)
	f.Enabled = base.Enabled
}

// ProjectFeatureEntity is implemented by every concrete project feature.
type ProjectFeatureEntity interface {
	Configurable
	ProjectFeatureBase() *ProjectFeature
}

// ProjectFeature is the part shared by all project features.
type ProjectFeature struct {
	*Entity
}

// NewProjectFeature creates a project feature of the given type.
func NewProjectFeature(typ string) *ProjectFeature {
	return &ProjectFeature{Entity: NewEntity(typ)}
}

// ProjectFeatureBase implements ProjectFeatureEntity.
func (f *ProjectFeature) ProjectFeatureBase() *ProjectFeature { return f }

// CopyFrom copies the parameters of base into f.
func (f *ProjectFeature) CopyFrom(base *ProjectFeature) {
	if base == nil {
		return
	}
	f.Entity.CopyFrom(base.Entity)
}
