// Package pipeline orchestrates a run: discover the selected paths, plan
// the renames (instruction program or date sort), check for conflicts,
// present the plan, confirm, execute, and write the undo script.
package pipeline
