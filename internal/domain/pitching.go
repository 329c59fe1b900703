package domain

// PitchingSeason is one player's pitching line for a single (year, stint).
// Innings are carried as outs recorded (IPOuts) so that career totals
// accumulate exactly; the fractional innings value is derived on demand.
type PitchingSeason struct {
	PlayerID string
	Year     int
	Stint    int
	Team     string
	League   string

	W      int
	L      int
	G      int
	GS     int
	CG     int
	SHO    int
	SV     int
	IPOuts int
	H      int
	ER     int
	HR     int
	BB     int
	SO     int
}

// IP returns innings pitched as a fractional count of outs / 3.
func (s PitchingSeason) IP() float64 {
	return float64(s.IPOuts) / 3.0
}

// ERA returns earned run average (9*ER/IP), 0 when no outs were recorded.
func (s PitchingSeason) ERA() float64 {
	if s.IPOuts == 0 {
		return 0
	}
	return float64(s.ER) * 9.0 / s.IP()
}

// WHIP returns walks plus hits per inning pitched, 0 when no outs were
// recorded.
func (s PitchingSeason) WHIP() float64 {
	if s.IPOuts == 0 {
		return 0
	}
	return float64(s.BB+s.H) / s.IP()
}

// add accumulates another line's counting stats into s.
func (s *PitchingSeason) add(o PitchingSeason) {
	s.W += o.W
	s.L += o.L
	s.G += o.G
	s.GS += o.GS
	s.CG += o.CG
	s.SHO += o.SHO
	s.SV += o.SV
	s.IPOuts += o.IPOuts
	s.H += o.H
	s.ER += o.ER
	s.HR += o.HR
	s.BB += o.BB
	s.SO += o.SO
}

// SumPitching returns the counting-stat totals across the given seasons.
func SumPitching(seasons []PitchingSeason) PitchingSeason {
	var total PitchingSeason
	for _, s := range seasons {
		total.add(s)
	}
	return total
}

// MergePitchingStints collapses multiple stints within a year into one
// display line per year. See MergeBattingStints for the team marker rules.
func MergePitchingStints(seasons []PitchingSeason) []PitchingSeason {
	merged := make([]PitchingSeason, 0, len(seasons))
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
