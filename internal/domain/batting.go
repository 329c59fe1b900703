package domain

// BattingSeason is one player's batting line for a single (year, stint).
// Counting stats only; rate stats are always derived so a table can never
// carry a stored value that disagrees with its components.
type BattingSeason struct {
	PlayerID string
	Year     int
	Stint    int
	Team     string
	League   string

	G   int
	AB  int
	R   int
	H   int
	Dbl int // doubles ("2B" in the source schema)
	Trp int // triples ("3B")
	HR  int
	RBI int
	SB  int
	CS  int
	BB  int
	SO  int
	IBB int
	HBP int
	SF  int
}

// PA approximates plate appearances as AB + BB + HBP + SF.
func (s BattingSeason) PA() int {
	return s.AB + s.BB + s.HBP + s.SF
}

// TotalBases returns H + 2B + 2*3B + 3*HR.
func (s BattingSeason) TotalBases() int {
	return s.H + s.Dbl + 2*s.Trp + 3*s.HR
}

// BA returns batting average, 0 when AB is 0.
func (s BattingSeason) BA() float64 {
	return ratio(s.H, s.AB)
}

// OBP returns on-base percentage, 0 when the denominator is 0.
func (s BattingSeason) OBP() float64 {
	return ratio(s.H+s.BB+s.HBP, s.AB+s.BB+s.HBP+s.SF)
}

// SLG returns slugging percentage, 0 when AB is 0.
func (s BattingSeason) SLG() float64 {
	return ratio(s.TotalBases(), s.AB)
}

// OPS returns OBP + SLG.
func (s BattingSeason) OPS() float64 {
	return s.OBP() + s.SLG()
}

// add accumulates another line's counting stats into s.
func (s *BattingSeason) add(o BattingSeason) {
	s.G += o.G
	s.AB += o.AB
	s.R += o.R
	s.H += o.H
	s.Dbl += o.Dbl
	s.Trp += o.Trp
	s.HR += o.HR
	s.RBI += o.RBI
	s.SB += o.SB
	s.CS += o.CS
	s.BB += o.BB
	s.SO += o.SO
	s.IBB += o.IBB
	s.HBP += o.HBP
	s.SF += o.SF
}

// SumBatting returns the counting-stat totals across the given seasons.
// Rate stats on the result are derived from the summed components, never
// averaged from per-season rates.
func SumBatting(seasons []BattingSeason) BattingSeason {
	var total BattingSeason
	for _, s := range seasons {
		total.add(s)
	}
	return total
}

// MergeBattingStints collapses multiple stints within a year into one
// display line per year, summing counting stats. When the stints were with
// different teams the team field becomes a marker like "2TM". Input must
// already be sorted by year then stint; output order is preserved.
func MergeBattingStints(seasons []BattingSeason) []BattingSeason {
	merged := make([]BattingSeason, 0, len(seasons))
	var teams []string
	for _, s := range seasons {
		if n := len(merged); n > 0 && merged[n-1].Year == s.Year {
			prev := &merged[n-1]
			teams = appendTeam(teams, s.Team)
			prev.Team = teamMarker(teams)
			if prev.League != s.League {
				prev.League = multiLeagueMarker
			}
			prev.add(s)
		} else {
			teams = teams[:0]
			teams = appendTeam(teams, s.Team)
			merged = append(merged, s)
		}
	}
	return merged
}

// ratio guards the rate-stat division: 0/0 is defined as 0, not an error.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
