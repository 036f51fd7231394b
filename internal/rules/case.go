package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LowerCase maps every rune to lower case.
func LowerCase(s string) string { return strings.ToLower(s) }

// UpperCase maps every rune to upper case.
func UpperCase(s string) string { return strings.ToUpper(s) }

// TitleCase upper-cases the first rune of every whitespace-separated word
// and lower-cases the rest.
func TitleCase(s string) string {
	prevSpace := true
	return strings.Map(func(r rune) rune {
		out := unicode.ToLower(r)
		if prevSpace {
			out = unicode.ToUpper(r)
		}
		prevSpace = unicode.IsSpace(r)
		return out
	}, s)
}

// SentenceCase upper-cases the first rune and lower-cases the rest.
func SentenceCase(s string) string {
	first := true
	return strings.Map(func(r rune) rune {
		if first {
			first = false
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	}, s)
}

// Sanitize keeps the maximal letter/digit runs of s joined by single
// spaces and drops everything else.
func Sanitize(s string) string {
	runs := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(runs, " ")
}

// capitalize upper-cases the first rune of w and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// JoinCamel joins whitespace-separated words as lowerCamelCase.
func JoinCamel(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
		} else {
			words[i] = capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// JoinSnake joins whitespace-separated words with underscores.
func JoinSnake(s string) string { return strings.Join(strings.Fields(s), "_") }

// JoinKebab joins whitespace-separated words with dashes.
func JoinKebab(s string) string { return strings.Join(strings.Fields(s), "-") }

// SplitCamel inserts a space at every camel-case boundary: before an upper
// case rune that follows a lower case rune or digit, and before the last
// rune of an upper case run that is followed by a lower case rune
// ("HTTPServer" -> "HTTP Server").
func SplitCamel(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitSnake turns underscores into spaces.
func SplitSnake(s string) string { return strings.ReplaceAll(s, "_", " ") }

// SplitKebab turns dashes into spaces.
func SplitKebab(s string) string { return strings.ReplaceAll(s, "-", " ") }
