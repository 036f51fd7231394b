// Package rules holds the pure string transforms behind the stem-level
// instructions. Every function takes a file stem and returns the rewritten
// stem; none of them touch the extension.
package rules

import (
	"strings"

	"github.com/backmassage/batchren/internal/instruction"
)

// Apply runs a stem-only instruction. ok is false for instructions that
// need more than the stem (pattern match, extension edits, reorder).
func Apply(in instruction.Instruction, stem string) (out string, ok bool) {
	switch in := in.(type) {
	case instruction.LowerCase:
		return LowerCase(stem), true
	case instruction.UpperCase:
		return UpperCase(stem), true
	case instruction.TitleCase:
		return TitleCase(stem), true
	case instruction.SentenceCase:
		return SentenceCase(stem), true
	case instruction.JoinCamel:
		return JoinCamel(stem), true
	case instruction.JoinSnake:
		return JoinSnake(stem), true
	case instruction.JoinKebab:
		return JoinKebab(stem), true
	case instruction.SplitCamel:
		return SplitCamel(stem), true
	case instruction.SplitSnake:
		return SplitSnake(stem), true
	case instruction.SplitKebab:
		return SplitKebab(stem), true
	case instruction.Sanitize:
		return Sanitize(stem), true
	case instruction.Replace:
		return Replace(stem, in.Pattern.Value(), in.With.Value()), true
	case instruction.Insert:
		return Insert(stem, in.Text, in.At), true
	case instruction.Delete:
		return Delete(stem, in.From, in.To), true
	}
	return stem, false
}

// Replace substitutes every occurrence of from. An empty from leaves s
// unchanged.
func Replace(s, from, to string) string {
	if from == "" {
		return s
	}
	return strings.ReplaceAll(s, from, to)
}

// Insert places text before rune index at, clamped to the string length.
func Insert(s, text string, at instruction.Position) string {
	runes := []rune(s)
	i := at.Resolve(len(runes))
	return string(runes[:i]) + text + string(runes[i:])
}

// Delete removes the runes in [from, to). Both bounds are clamped; an empty
// or inverted range deletes nothing.
func Delete(s string, from int, to instruction.Position) string {
	runes := []rune(s)
	start := instruction.At(from).Resolve(len(runes))
	end := to.Resolve(len(runes))
	if start >= end {
		return s
	}
	return string(runes[:start]) + string(runes[end:])
}
