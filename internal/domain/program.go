package domain

import "strings"

// Program is the student program tier. Empty means no program recorded.
type Program string

const (
	ProgramTier1 Program = "Tier 1"
	ProgramTier2 Program = "Tier 2"
	ProgramTier3 Program = "Tier 3"
)

// Programs lists the recognized programs in display order.
var Programs = []Program{ProgramTier1, ProgramTier2, ProgramTier3}

// IsKnown reports whether p is a recognized program.
func (p Program) IsKnown() bool {
	return p.Rank() < len(Programs)
}

// Rank is the display position of p. Unrecognized and empty programs share
// the last rank.
func (p Program) Rank() int {
	for i, known := range Programs {
		if p == known {
			return i
		}
	}
	return len(Programs)
}

// DisplayName returns p, or "Unassigned" when empty.
func (p Program) DisplayName() string {
	if p == "" {
		return "Unassigned"
	}
	return string(p)
}

// ParseProgram maps s onto a recognized program, ignoring case and
// surrounding space. Anything else is kept as given (trimmed).
func ParseProgram(s string) Program {
	s = strings.TrimSpace(s)
	for _, p := range Programs {
		if strings.EqualFold(string(p), s) {
			return p
		}
	}
	return Program(s)
}
