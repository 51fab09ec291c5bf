package config

import "context"

// Loader is the interface for a format-specific pipeline definition loader.
type Loader interface {
	// Load reads every definition file found under paths and builds the
	// projects they declare. Problems in the files are returned together as
	// a single error; the returned model holds whatever could be built.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
