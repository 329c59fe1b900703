package domain

import "strings"

// PlayerRecord is the biographical record for one player.
// Records are immutable once loaded; everything else refers to players
// by ID only, so the record is never shared mutable state.
type PlayerRecord struct {
	ID        string
	FirstName string
	LastName  string
	BirthYear int // 0 when unknown
}

// FullName returns "First Last", tolerating a missing half.
func (p PlayerRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// AgeIn returns the player's age in the given season year, or 0 when the
// birth year is unknown.
func (p PlayerRecord) AgeIn(year int) int {
	if p.BirthYear <= 0 {
		return 0
	}
	return year - p.BirthYear
}
