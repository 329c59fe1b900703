package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/ntbapp/ntb-server/internal/domain"
)

// Align positions a cell's text within its column.
type Align int

// Cell alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column is one declarative column of the stats table. Width is in the
// layout's character units; the renderer converts to pixels. Identity
// columns describe who/where rather than performance and go blank on the
// totals row.
type Column struct {
	Name     string
	Width    float64
	Align    Align
	Bold     bool // rate stats render emphasized
	Link     bool // Year/Tm/Lg render in link blue
	Award    bool // award codes render in link blue, never bold
	Identity bool

	Value func(domain.CareerRow) string
	// Hot marks a standout value for highlight styling. Nil means the
	// column never highlights.
	Hot func(domain.CareerRow) bool
}

// Highlight thresholds, inclusive. OPS and ERA compare at the displayed
// precision so a rendered .900 or 3.00 always highlights; OPS sums two
// independently rounded quotients and can land a hair under the exact
// boundary in float64.
const (
	hotHR  = 30
	hotSB  = 30
	hotOPS = 900 // thousandths
	hotW   = 20
	hotSO  = 200
	hotERA = 300 // hundredths
)

func yearValue(r domain.CareerRow) string {
	if r.Totals {
		return r.Label
	}
	return strconv.Itoa(r.Year)
}

func awardsValue(r domain.CareerRow) string {
	return strings.Join(r.Awards, ",")
}

// battingColumns is the fixed batting layout: order, widths, and
// alignment follow the Baseball Reference standard batting table.
var battingColumns = []Column{
	{Name: "Year", Width: 4.5, Align: AlignLeft, Link: true, Bold: true, Value: yearValue},
	{Name: "Age", Width: 3.0, Align: AlignRight, Identity: true, Value: func(r domain.CareerRow) string { return fmtAge(r.Age) }},
	{Name: "Tm", Width: 3.5, Align: AlignLeft, Link: true, Identity: true, Value: func(r domain.CareerRow) string { return r.Team }},
	{Name: "Lg", Width: 2.5, Align: AlignCenter, Link: true, Identity: true, Value: func(r domain.CareerRow) string { return r.League }},
	{Name: "G", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.G) }},
	{Name: "AB", Width: 4.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.AB) }},
	{Name: "R", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.R) }},
	{Name: "H", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.H) }},
	{Name: "2B", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.Dbl) }},
	{Name: "3B", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.Trp) }},
	{Name: "HR", Width: 3.5, Align: AlignRight,
		Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.HR) },
		Hot:   func(r domain.CareerRow) bool { return r.Batting.HR >= hotHR }},
	{Name: "RBI", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.RBI) }},
	{Name: "SB", Width: 3.0, Align: AlignRight,
		Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.SB) },
		Hot:   func(r domain.CareerRow) bool { return r.Batting.SB >= hotSB }},
	{Name: "CS", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.CS) }},
	{Name: "BB", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.BB) }},
	{Name: "SO", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Batting.SO) }},
	{Name: "BA", Width: 4.5, Align: AlignRight, Bold: true, Value: func(r domain.CareerRow) string { return fmtRate(r.Batting.BA()) }},
	{Name: "OBP", Width: 4.5, Align: AlignRight, Bold: true, Value: func(r domain.CareerRow) string { return fmtRate(r.Batting.OBP()) }},
	{Name: "SLG", Width: 4.5, Align: AlignRight, Bold: true, Value: func(r domain.CareerRow) string { return fmtRate(r.Batting.SLG()) }},
	{Name: "OPS", Width: 4.5, Align: AlignRight, Bold: true,
		Value: func(r domain.CareerRow) string { return fmtRate(r.Batting.OPS()) },
		Hot:   func(r domain.CareerRow) bool { return math.Round(r.Batting.OPS()*1000) >= hotOPS }},
	{Name: "Pos", Width: 5.5, Align: AlignLeft, Identity: true, Value: func(r domain.CareerRow) string { return r.Position }},
	{Name: "Awards", Width: 7.0, Align: AlignLeft, Award: true, Identity: true, Value: awardsValue},
}

// pitchingColumns is the fixed pitching layout.
var pitchingColumns = []Column{
	{Name: "Year", Width: 4.5, Align: AlignLeft, Link: true, Bold: true, Value: yearValue},
	{Name: "Age", Width: 3.0, Align: AlignRight, Identity: true, Value: func(r domain.CareerRow) string { return fmtAge(r.Age) }},
	{Name: "Tm", Width: 3.5, Align: AlignLeft, Link: true, Identity: true, Value: func(r domain.CareerRow) string { return r.Team }},
	{Name: "Lg", Width: 2.5, Align: AlignCenter, Link: true, Identity: true, Value: func(r domain.CareerRow) string { return r.League }},
	{Name: "W", Width: 3.0, Align: AlignRight,
		Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.W) },
		Hot:   func(r domain.CareerRow) bool { return r.Pitching.W >= hotW }},
	{Name: "L", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.L) }},
	{Name: "ERA", Width: 4.5, Align: AlignRight, Bold: true,
		Value: func(r domain.CareerRow) string { return fmtERA(r.Pitching.ERA()) },
		Hot: func(r domain.CareerRow) bool {
			return r.Pitching.IPOuts > 0 && math.Round(r.Pitching.ERA()*100) <= hotERA
		}},
	{Name: "G", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.G) }},
	{Name: "GS", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.GS) }},
	{Name: "CG", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.CG) }},
	{Name: "SHO", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.SHO) }},
	{Name: "SV", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.SV) }},
	{Name: "IP", Width: 4.5, Align: AlignRight, Bold: true, Value: func(r domain.CareerRow) string { return fmtIP(r.Pitching.IPOuts) }},
	{Name: "H", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.H) }},
	{Name: "ER", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.ER) }},
	{Name: "HR", Width: 3.0, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.HR) }},
	{Name: "BB", Width: 3.5, Align: AlignRight, Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.BB) }},
	{Name: "SO", Width: 3.5, Align: AlignRight,
		Value: func(r domain.CareerRow) string { return fmtInt(r.Pitching.SO) },
		Hot:   func(r domain.CareerRow) bool { return r.Pitching.SO >= hotSO }},
	{Name: "WHIP", Width: 4.5, Align: AlignRight, Bold: true, Value: func(r domain.CareerRow) string { return fmtERA(r.Pitching.WHIP()) }},
	{Name: "Awards", Width: 7.0, Align: AlignLeft, Award: true, Identity: true, Value: awardsValue},
}

// columnsFor returns the layout for a category, nil when unrecognized.
func columnsFor(c domain.Category) []Column {
	switch c {
	case domain.CategoryBatting:
		return battingColumns
	case domain.CategoryPitching:
		return pitchingColumns
	default:
		return nil
	}
}

// sectionTitle is the gray bar label above the column headers.
func sectionTitle(c domain.Category) string {
	if c == domain.CategoryPitching {
		return "Standard Pitching"
	}
	return "Standard Batting"
}
