package pattern

import "fmt"

// Error reports a pattern that could not be compiled or parsed.
type Error struct {
	Kind    string // "match" or "replace"
	Pattern string
	Pos     int
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s pattern %q at offset %d: %s", e.Kind, e.Pattern, e.Pos, e.Reason)
}
