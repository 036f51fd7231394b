// Package engine threads a rename buffer through a parsed instruction
// program.
//
// A run has three phases:
//
//	Prepare  compile every match and replace pattern once, validate
//	         collaborators (reorderer), fail before touching any file
//	Apply    for each instruction in program order, rewrite the stem (or
//	         extension) of every buffer entry's current destination
//	Diff     drop entries whose destination equals their source
//
// The engine never touches the filesystem except through the injected
// Hasher, which reads file contents for {sha}.
package engine
