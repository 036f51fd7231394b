package naming

import (
	"fmt"
	"strings"
)

// ConflictKind classifies why a planned move cannot run safely.
type ConflictKind int

const (
	// ConflictDuplicate: two sources are planned onto the same destination.
	ConflictDuplicate ConflictKind = iota
	// ConflictExists: the destination already exists and is not moving away.
	ConflictExists
	// ConflictChain: the destination is the source of another planned move,
	// so the result would depend on execution order.
	ConflictChain
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictDuplicate:
		return "duplicate destination"
	case ConflictExists:
		return "destination exists"
	case ConflictChain:
		return "destination is another source"
	}
	return "conflict"
}

// Conflict is one unsafe move. Other names the competing source for
// duplicates and chains.
type Conflict struct {
	Kind  ConflictKind
	Move  Move
	Other string
}

func (c Conflict) String() string {
	if c.Other != "" {
		return fmt.Sprintf("%s -> %s: %s (%s)", c.Move.Source, c.Move.Dest, c.Kind, c.Other)
	}
	return fmt.Sprintf("%s -> %s: %s", c.Move.Source, c.Move.Dest, c.Kind)
}

// ConflictError wraps the conflicts found in a plan.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	lines := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		lines[i] = "  " + c.String()
	}
	return fmt.Sprintf("%d conflicting rename(s):\n%s", len(e.Conflicts), strings.Join(lines, "\n"))
}

// CollisionDetector tracks which source claims each destination. Unlike a
// resolver it never invents alternative names; it only reports.
type CollisionDetector struct {
	owners  map[string]string // destination -> first source claiming it
	sources map[string]bool
	exists  func(string) bool
}

// NewCollisionDetector prepares a detector for moves. exists reports
// whether a path is present on disk; nil means nothing exists.
func NewCollisionDetector(moves []Move, exists func(string) bool) *CollisionDetector {
	d := &CollisionDetector{
		owners:  make(map[string]string),
		sources: make(map[string]bool, len(moves)),
		exists:  exists,
	}
	for _, m := range moves {
		if m.Changed() {
			d.sources[m.Source] = true
		}
	}
	return d
}

// Check claims m.Dest for m.Source and returns the conflict, if any.
func (d *CollisionDetector) Check(m Move) (Conflict, bool) {
	if !m.Changed() {
		return Conflict{}, false
	}
	if owner, claimed := d.owners[m.Dest]; claimed && owner != m.Source {
		return Conflict{Kind: ConflictDuplicate, Move: m, Other: owner}, true
	}
	d.owners[m.Dest] = m.Source

	if d.sources[m.Dest] {
		return Conflict{Kind: ConflictChain, Move: m, Other: m.Dest}, true
	}
	if d.exists != nil && d.exists(m.Dest) && !m.CaseOnly() {
		return Conflict{Kind: ConflictExists, Move: m}, true
	}
	return Conflict{}, false
}

// DetectConflicts checks every changed move in order and returns all
// conflicts found.
func DetectConflicts(moves []Move, exists func(string) bool) []Conflict {
	d := NewCollisionDetector(moves, exists)
	var out []Conflict
	for _, m := range moves {
		if c, ok := d.Check(m); ok {
			out = append(out, c)
		}
	}
	return out
}
