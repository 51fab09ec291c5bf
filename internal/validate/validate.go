// Package validate collects property errors and warnings reported by
// configuration entities.
//
// Entities report problems through a Consumer. Reporting never stops the
// walk: every missing mandatory property produces its own Problem, and the
// caller decides what to do with the collected set.
package validate

import (
	"fmt"
	"strings"
)

// Severity classifies a Problem.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Problem is one detected issue. Path is the dotted property path relative to
// the entity (e.g. "commandType.source.path"); Scope locates the entity
// itself and is empty when validating a standalone entity.
type Problem struct {
	Scope    string
	Path     string
	Message  string
	Severity Severity
}

func (p Problem) Error() string {
	var b strings.Builder
	if p.Scope != "" {
		b.WriteString(p.Scope)
		b.WriteString(": ")
	}
	if p.Path != "" {
		b.WriteString(p.Path)
		b.WriteString(": ")
	}
	b.WriteString(p.Message)
	return b.String()
}

// Consumer is the sink entities report problems to.
type Consumer interface {
	PropertyError(path, message string)
	PropertyWarning(path, message string)
}

// Validatable is implemented by entities and compound variants that have
// mandatory properties.
type Validatable interface {
	Validate(c Consumer)
}

// Problems is an ordered list of problems.
type Problems []Problem

// HasErrors reports whether at least one problem has Error severity.
func (ps Problems) HasErrors() bool {
	for _, p := range ps {
		if p.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns the problems with Error severity.
func (ps Problems) Errors() Problems {
	return ps.filter(Error)
}

// Warnings returns the problems with Warning severity.
func (ps Problems) Warnings() Problems {
	return ps.filter(Warning)
}

func (ps Problems) filter(sev Severity) Problems {
	var out Problems
	for _, p := range ps {
		if p.Severity == sev {
			out = append(out, p)
		}
	}
	return out
}

// Err returns nil when there are no errors, otherwise an error listing them.
// Warnings are not included.
func (ps Problems) Err() error {
	errs := ps.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, p := range errs {
		msgs[i] = p.Error()
	}
	return fmt.Errorf("validation failed with %d error(s):\n  - %s", len(errs), strings.Join(msgs, "\n  - "))
}

// Collector accumulates reported problems in order.
type Collector struct {
	Problems Problems
}

// PropertyError implements Consumer.
func (c *Collector) PropertyError(path, message string) {
	c.Problems = append(c.Problems, Problem{Path: path, Message: message, Severity: Error})
}

// PropertyWarning implements Consumer.
func (c *Collector) PropertyWarning(path, message string) {
	c.Problems = append(c.Problems, Problem{Path: path, Message: message, Severity: Warning})
}

func (c *Collector) add(p Problem) {
	c.Problems = append(c.Problems, p)
}

// Run validates v with a fresh Collector and returns what it reported.
func Run(v Validatable) Problems {
	var c Collector
	v.Validate(&c)
	return c.Problems
}

// Mandatory reports the standard error for a mandatory property that is not
// specified.
func Mandatory(c Consumer, path string) {
	c.PropertyError(path, fmt.Sprintf("mandatory '%s' property is not specified", path))
}

// Scoped wraps c so that every problem reported through it carries scope.
// Nested scopes are joined with "/".
func Scoped(c Consumer, scope string) Consumer {
	if s, ok := c.(*scoped); ok {
		return &scoped{next: s.next, scope: s.scope + "/" + scope}
	}
	return &scoped{next: c, scope: scope}
}

type scoped struct {
	next  Consumer
	scope string
}

func (s *scoped) PropertyError(path, message string) {
	s.emit(Problem{Scope: s.scope, Path: path, Message: message, Severity: Error})
}

func (s *scoped) PropertyWarning(path, message string) {
	s.emit(Problem{Scope: s.scope, Path: path, Message: message, Severity: Warning})
}

func (s *scoped) emit(p Problem) {
	if col, ok := s.next.(*Collector); ok {
		col.add(p)
		return
	}
	// Consumers outside this package only see path and message.
	if p.Severity == Warning {
		s.next.PropertyWarning(p.Scope+": "+p.Path, p.Message)
		return
	}
	s.next.PropertyError(p.Scope+": "+p.Path, p.Message)
}
