// Package registry provides the central "glue" for the entity packages.
//
// The Registry maps the names used in pipeline definition files (e.g.
// "dockerCommand") to the Go constructors of the entities they stand for.
// Loaders use it to build entities by name, the CLI uses it to describe
// what is available.
//
// During application startup, the registry is populated and then validated
// to ensure that every definition is consistent with the entity its
// constructor returns, preventing a wide class of runtime errors.
package registry
