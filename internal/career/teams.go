package career

// teamDisplay remaps Lahman franchise codes onto the abbreviations fans
// actually recognize (NYA renders as NYY, CHN as CHC). Codes outside the
// map, including merged-year markers like "2TM", pass through unchanged.
var teamDisplay = map[string]string{
	"LAN": "LAD", "SLN": "STL", "CHN": "CHC", "SFN": "SFG", "NYN": "NYM",
	"SDN": "SDP", "CIN": "CIN", "PIT": "PIT", "MIL": "MIL", "ARI": "ARI",
	"COL": "COL", "ATL": "ATL", "MIA": "MIA", "WAS": "WSN", "PHI": "PHI",
	"CHA": "CHW", "KCA": "KCR", "ANA": "ANA", "LAA": "LAA", "OAK": "OAK",
	"SEA": "SEA", "TEX": "TEX", "MIN": "MIN", "DET": "DET", "CLE": "CLE",
	"TOR": "TOR", "BAL": "BAL", "BOS": "BOS", "NYA": "NYY", "TBA": "TBR",
	"HOU": "HOU", "FLO": "FLA", "MON": "MON", "ML4": "MIL", "SE1": "SEA",
	"CAL": "CAL", "WSA": "WSA", "PHA": "PHA", "SLA": "STL", "BRO": "BKN",
	"NY1": "NYG", "BSN": "BSN", "MLN": "MLN", "WS1": "WSH", "WS2": "WSH",
	"BL2": "BAL", "BL3": "BAL", "BL4": "BAL",
	"PT1": "PIT", "RC1": "ROC", "CN1": "CIN", "CN2": "CIN",
	"CH1": "CHC", "CH2": "CHW", "CL4": "CLE", "CL5": "CLE", "CL6": "CLE",
	"PHN": "PHI", "SLF": "STL", "TBD": "TBD",
}

// displayTeam returns the display abbreviation for a raw team code.
func displayTeam(code string) string {
	if d, ok := teamDisplay[code]; ok {
		return d
	}
	return code
}
