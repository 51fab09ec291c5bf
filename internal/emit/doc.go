// Package emit renders loaded projects for consumption by other tools.
//
// JSON and YAML output describe every entity by its wire type and its ordered
// parameters. HCL output re-renders the projects as canonical definition
// files that load back into the same parameters.
package emit
