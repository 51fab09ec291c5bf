// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a CI pipeline definition:
// projects, build types and the entities registered into them.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Entity: The shared core of every configurable thing. It has a fixed type
//     string, an optional identifier and a flat, ordered parameter store. The
//     store is the wire contract consumed by the CI server.
//
//   - BuildStep, BuildFeature, ProjectFeature: The three entity kinds. Concrete
//     entities (a Docker command step, the AssemblyInfo patcher, ...) embed one
//     of them and declare typed properties on the entity's props.Bag.
//
//   - BuildType and Project: The containers. Entities are appended to their
//     ordered collections and belong to exactly one of them.
//
// Validation is separate from construction. Builders only assemble entities;
// Project.Validate walks the finished tree, reporting every problem with the
// scope of the entity it belongs to and the dotted path of the property.
package model
