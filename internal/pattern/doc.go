// Package pattern implements the two halves of the pattern-match
// instruction:
//
//   - match patterns: literal text with typed placeholders ("florbs")
//     {A} alphabetic, {N} digits, {X} anything, {D} a date. A match pattern
//     compiles to an anchored regular expression with one named capture
//     group per florb, numbered left to right from 1.
//   - replace patterns: literal text with {n} back-references, {sng...}
//     sequential numbers, {rng...} random numbers and {sha} content hashes.
//
// Both are compiled once per instruction and then applied per file.
package pattern
