// Package config defines the format-agnostic result of loading pipeline
// definition files, along with the Loader interface implemented by the
// format-specific adapters.
//
// The config.Model holds the constructed projects plus the source location
// of every entity and property it was built from, so that validation
// problems can be reported against the files the user wrote. Concrete
// loaders, such as the HCL one, are provided in separate packages.
package config
