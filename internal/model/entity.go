// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Entity, the common core of every build step, build
// feature and project feature.
//
// An entity is a fixed type string plus a flat parameter store. Concrete
// entities declare their typed properties on the entity's Bag; the store is
// what ends up on the wire, so the Bag never holds anything the store
// doesn't.
package model

import (
	"fmt"
	"regexp"

	"github.com/vk/stepconf/internal/params"
	"github.com/vk/stepconf/internal/props"
	"github.com/vk/stepconf/internal/validate"
)

// MaxIDLength is the longest identifier the server accepts.
const MaxIDLength = 80

var idPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Configurable is implemented by every entity kind.
type Configurable interface {
	validate.Validatable
	Core() *Entity
}

// Entity carries the type discriminator, the optional identifier and the
// parameter store of one configured entity.
type Entity struct {
	// ID is optional. When set it must satisfy ValidateID.
	ID string

	typ   string
	bag   *props.Bag
	owner string
}

// NewEntity creates an entity of the given type with an empty store.
func NewEntity(typ string) *Entity {
	return &Entity{typ: typ, bag: props.NewBag(nil)}
}

// Core returns e itself. It lets code holding any entity kind reach the
// shared part.
func (e *Entity) Core() *Entity { return e }

// Type returns the fixed type discriminator.
func (e *Entity) Type() string { return e.typ }

// Bag returns the bag typed properties are declared on.
func (e *Entity) Bag() *props.Bag { return e.bag }

// Params returns the underlying store.
func (e *Entity) Params() *params.Store { return e.bag.Store() }

// Param writes a raw parameter. It is the escape hatch for keys no typed
// property covers.
func (e *Entity) Param(key, value string) {
	e.bag.Store().Set(key, value)
}

// HasParam reports whether key is present.
func (e *Entity) HasParam(key string) bool {
	return e.bag.Store().Has(key)
}

// CopyFrom copies the identifier and every parameter of base into e.
// Parameters of base overwrite existing ones.
func (e *Entity) CopyFrom(base *Entity) {
	if base == nil {
		return
	}
	if base.typ != e.typ {
		panic(fmt.Sprintf("model: cannot copy %s entity into %s entity", base.typ, e.typ))
	}
	e.ID = base.ID
	e.bag.Store().Merge(base.bag.Store())
}

// Owner describes the collection e was added to, or "" when it is detached.
func (e *Entity) Owner() string { return e.owner }

// Validate checks the identifier and reports stored enum values that cannot
// be decoded.
func (e *Entity) Validate(c validate.Consumer) {
	ValidateID(c, "id", e.ID)
	props.CheckEnums(c, "", e.bag)
}

// claim marks e as owned by owner. An entity belongs to exactly one
// collection; adding it to a second one is a programming error.
func (e *Entity) claim(owner string) {
	if e.owner != "" {
		panic(fmt.Sprintf("model: %s entity %q already belongs to %s, cannot add it to %s", e.typ, e.ID, e.owner, owner))
	}
	e.owner = owner
}

// ValidateID reports an invalid identifier at path. An empty id is valid:
// the identifier is optional.
func ValidateID(c validate.Consumer, path, id string) {
	if id == "" {
		return
	}
	if len(id) > MaxIDLength {
		c.PropertyError(path, fmt.Sprintf("id '%s' is too long, at most %d characters are allowed", id, MaxIDLength))
		return
	}
	if !idPattern.MatchString(id) {
		c.PropertyError(path, fmt.Sprintf("id '%s' is invalid: it must start with a latin letter and contain only latin letters, digits and underscores", id))
	}
}
