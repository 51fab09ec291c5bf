// Package app contains the core application logic: loading definition files,
// validating the projects they declare, and exporting or describing them. It
// is decoupled from any specific entrypoint like a CLI.
package app
