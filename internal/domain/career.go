package domain

import (
	"fmt"
	"slices"
)

// multiLeagueMarker replaces the league code when a merged year spans
// both leagues.
const multiLeagueMarker = "2LG"

// appendTeam records a team in the distinct-team list for the year being
// merged, preserving first-seen order.
func appendTeam(teams []string, team string) []string {
	if slices.Contains(teams, team) {
		return teams
	}
	return append(teams, team)
}

// teamMarker returns the display team for a merged year: the team itself
// when all stints were with one club, otherwise "2TM", "3TM", and so on.
func teamMarker(teams []string) string {
	if len(teams) == 1 {
		return teams[0]
	}
	return fmt.Sprintf("%dTM", len(teams))
}

// CareerRow is one rendered line of a career table: a single season, or
// the totals line when Totals is set. Exactly one of Batting/Pitching
// carries data, according to the owning table's Category.
type CareerRow struct {
	Year     int
	Age      int // 0 when the birth year is unknown
	Team     string
	League   string
	Position string   // Baseball Reference style, e.g. "*8/DH"; batting only
	Awards   []string // sorted award codes, e.g. ["AS", "GG", "MVP-3"]

	Batting  BattingSeason
	Pitching PitchingSeason

	// Totals tags the career-totals line so the renderer can style it
	// without relying on position in the slice.
	Totals bool
	// Label is the totals-row year-column text, e.g. "12 Yrs".
	Label string
}

// CareerTable is the full renderable model for one player's career:
// chronological season rows plus a tagged totals row. It is derived fresh
// per round and never persisted.
type CareerTable struct {
	PlayerID string
	Category Category
	Rows     []CareerRow
	Totals   CareerRow
}

// Seasons returns the number of season rows (the totals row excluded).
func (t *CareerTable) Seasons() int {
	return len(t.Rows)
}

// Empty reports whether the table has no season rows. Rendering an empty
// table is a defect upstream, so callers check this before drawing.
func (t *CareerTable) Empty() bool {
	return len(t.Rows) == 0
}
