// Package params provides the ordered, string-keyed parameter store that
// backs every configuration entity.
//
// The store is the wire contract with the CI server: each entity is emitted
// as its type plus the entries of its store, in insertion order. A key that
// is absent means "never set", which is different from a key that is present
// with an empty value.
package params
