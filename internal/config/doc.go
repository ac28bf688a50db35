// Package config implements solgo's layered configuration engine.
//
// One resolution pass loads the global and project root documents,
// expands their subconfig references depth-first into a flat precedence
// order, merges option values last-write-wins, validates and defaults
// them against the schema registry, and resolves path-typed values
// against the working directory. The result is an immutable
// ResolvedConfig snapshot; collaborators never observe a partial one.
package config
