// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"strings"

	"github.com/vk/stepconf/internal/validate"
)

// ConditionOp is the comparison a step condition performs.
type ConditionOp string

const (
	OpEquals         ConditionOp = "equals"
	OpDoesNotEqual   ConditionOp = "doesNotEqual"
	OpContains       ConditionOp = "contains"
	OpDoesNotContain ConditionOp = "doesNotContain"
	OpStartsWith     ConditionOp = "startsWith"
	OpEndsWith       ConditionOp = "endsWith"
	OpMatches        ConditionOp = "matches"
	OpDoesNotMatch   ConditionOp = "doesNotMatch"
	OpMoreThan       ConditionOp = "moreThan"
	OpNoMoreThan     ConditionOp = "noMoreThan"
	OpLessThan       ConditionOp = "lessThan"
	OpNoLessThan     ConditionOp = "noLessThan"
	OpExists         ConditionOp = "exists"
	OpDoesNotExist   ConditionOp = "doesNotExist"
)

var conditionOps = []ConditionOp{
	OpEquals, OpDoesNotEqual, OpContains, OpDoesNotContain,
	OpStartsWith, OpEndsWith, OpMatches, OpDoesNotMatch,
	OpMoreThan, OpNoMoreThan, OpLessThan, OpNoLessThan,
	OpExists, OpDoesNotExist,
}

// ConditionOps returns every supported operation.
func ConditionOps() []ConditionOp {
	out := make([]ConditionOp, len(conditionOps))
	copy(out, conditionOps)
	return out
}

// ParseConditionOp looks an operation up by name.
func ParseConditionOp(s string) (ConditionOp, error) {
	for _, op := range conditionOps {
		if string(op) == s {
			return op, nil
		}
	}
	names := make([]string, len(conditionOps))
	for i, op := range conditionOps {
		names[i] = string(op)
	}
	return "", fmt.Errorf("unknown condition '%s', expected one of: %s", s, strings.Join(names, ", "))
}

// Unary reports whether op takes no value.
func (op ConditionOp) Unary() bool {
	return op == OpExists || op == OpDoesNotExist
}

// Condition gates a step on a build parameter.
type Condition struct {
	Op    ConditionOp
	Name  string
	Value string
}

// Conditions is the ordered list of conditions of a step. All of them must
// hold for the step to run.
type Conditions struct {
	items []Condition
}

// Add appends a condition.
func (c *Conditions) Add(op ConditionOp, name, value string) {
	c.items = append(c.items, Condition{Op: op, Name: name, Value: value})
}

func (c *Conditions) Equals(name, value string)         { c.Add(OpEquals, name, value) }
func (c *Conditions) DoesNotEqual(name, value string)   { c.Add(OpDoesNotEqual, name, value) }
func (c *Conditions) Contains(name, value string)       { c.Add(OpContains, name, value) }
func (c *Conditions) DoesNotContain(name, value string) { c.Add(OpDoesNotContain, name, value) }
func (c *Conditions) StartsWith(name, value string)     { c.Add(OpStartsWith, name, value) }
func (c *Conditions) EndsWith(name, value string)       { c.Add(OpEndsWith, name, value) }
func (c *Conditions) Matches(name, value string)        { c.Add(OpMatches, name, value) }
func (c *Conditions) DoesNotMatch(name, value string)   { c.Add(OpDoesNotMatch, name, value) }
func (c *Conditions) MoreThan(name, value string)       { c.Add(OpMoreThan, name, value) }
func (c *Conditions) NoMoreThan(name, value string)     { c.Add(OpNoMoreThan, name, value) }
func (c *Conditions) LessThan(name, value string)       { c.Add(OpLessThan, name, value) }
func (c *Conditions) NoLessThan(name, value string)     { c.Add(OpNoLessThan, name, value) }
func (c *Conditions) Exists(name string)                { c.Add(OpExists, name, "") }
func (c *Conditions) DoesNotExist(name string)          { c.Add(OpDoesNotExist, name, "") }

// Items returns a copy of the conditions in order.
func (c *Conditions) Items() []Condition {
	out := make([]Condition, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of conditions.
func (c *Conditions) Len() int { return len(c.items) }

// Validate checks every condition. Paths are "conditions[i].name" and
// "conditions[i].value".
func (c *Conditions) Validate(cons validate.Consumer) {
	for i, cond := range c.items {
		prefix := fmt.Sprintf("conditions[%d]", i)
		if _, err := ParseConditionOp(string(cond.Op)); err != nil {
			cons.PropertyError(prefix, err.Error())
			continue
		}
		if cond.Name == "" {
			validate.Mandatory(cons, prefix+".name")
		}
		if !cond.Op.Unary() && cond.Value == "" {
			validate.Mandatory(cons, prefix+".value")
		}
	}
}
