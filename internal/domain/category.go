// Package domain contains the core types for career stat tables: players,
// season stat lines, awards, and the aggregated career table model.
package domain

// Category identifies which stat sheet a table or season line belongs to.
type Category string

// Stat categories.
const (
	CategoryBatting  Category = "batting"
	CategoryPitching Category = "pitching"
)

// Valid returns true if the category is a recognized value.
func (c Category) Valid() bool {
	return c == CategoryBatting || c == CategoryPitching
}

// Mode is the game-level filter mode. Unlike Category it admits "both",
// in which case the session decides per player which category to display.
type Mode string

// Filter modes.
const (
	ModeBatting  Mode = "batting"
	ModePitching Mode = "pitching"
	ModeBoth     Mode = "both"
)

// Valid returns true if the mode is a recognized value.
func (m Mode) Valid() bool {
	switch m {
	case ModeBatting, ModePitching, ModeBoth:
		return true
	default:
		return false
	}
}

// Includes reports whether the mode covers the given category.
func (m Mode) Includes(c Category) bool {
	switch m {
	case ModeBoth:
		return true
	case ModeBatting:
		return c == CategoryBatting
	case ModePitching:
		return c == CategoryPitching
	default:
		return false
	}
}
