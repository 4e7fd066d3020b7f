// Package definition loads machine definition files.
//
// A definition is a YAML document that declares the initial state of a
// machine, the exploration settings, the transformation rules, and an
// optional list of filter rules. The loader performs structural
// validation; Compile turns a validated document into the typed inputs
// the explorer and filter packages consume.
package definition
