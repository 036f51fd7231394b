// Package mover performs the renames of a plan, either with os.Rename or
// through "git mv" so history follows the files. Execution stops at the
// first failure; nothing already renamed is rolled back.
package mover
