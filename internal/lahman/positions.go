package lahman

import (
	"log/slog"
	"os"
	"sort"
	"strings"
)

// appearance is one Appearances.csv row reduced to the games played at
// each position.
type appearance struct {
	team  string
	games map[string]int // position code -> games
}

// positionCols maps Appearances.csv columns to scorer position codes.
// Order matters only for stable iteration; display order is by games.
var positionCols = []struct {
	col  string
	code string
}{
	{"G_c", "2"},
	{"G_1b", "3"},
	{"G_2b", "4"},
	{"G_3b", "5"},
	{"G_ss", "6"},
	{"G_lf", "7"},
	{"G_cf", "8"},
	{"G_rf", "9"},
	{"G_dh", "D"},
	{"G_p", "1"},
	{"G_of", "O"},
}

func (s *Store) loadAppearances(path string, log *slog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		log.Warn("Appearances table not found, position data will be unavailable", "file", appearancesFile)
		return nil
	}
	t, err := readTable(path, appearancesFile, "playerID", "yearID", "teamID")
	if err != nil {
		return err
	}

	for i, row := range t.rows {
		id := t.str(row, "playerID")
		if id == "" {
			continue
		}
		year, err := t.intCol(row, "yearID", i+2)
		if err != nil {
			return err
		}

		games := make(map[string]int, len(positionCols))
		for _, pc := range positionCols {
			v, err := t.intCol(row, pc.col, i+2)
			if err != nil {
				return err
			}
			if v > 0 {
				games[pc.code] = v
			}
		}

		key := playerYear{id, year}
		s.appear[key] = append(s.appear[key], appearance{
			team:  t.str(row, "teamID"),
			games: games,
		})
	}

	s.hasAppearances = true
	log.Debug("Loaded appearances", "rows", len(t.rows))
	return nil
}

// PositionLine derives a Baseball Reference style position string for a
// player-year, e.g. "*8/DH" or "*6". The primary position (most games)
// gets the asterisk; secondary positions follow slash-separated, dropping
// anything under 3 games and capping the list at 4 entries. When team is
// non-empty and that team has appearance rows for the year, only those
// rows count; otherwise all of the year's rows do. Returns "" when no
// appearance data is available.
func (s *Store) PositionLine(playerID string, year int, team string) string {
	rows := s.appear[playerYear{playerID, year}]
	if len(rows) == 0 {
		return ""
	}

	matched := rows
	if team != "" {
		var byTeam []appearance
		for _, a := range rows {
			if a.team == team {
				byTeam = append(byTeam, a)
			}
		}
		if len(byTeam) > 0 {
			matched = byTeam
		}
	}

	totals := make(map[string]int)
	for _, a := range matched {
		for code, g := range a.games {
			totals[code] += g
		}
	}
	if len(totals) == 0 {
		return ""
	}

	// The generic outfield column double-counts specific OF positions.
	if totals["7"] > 0 || totals["8"] > 0 || totals["9"] > 0 {
		delete(totals, "O")
	}

	type posGames struct {
		code  string
		games int
	}
	ranked := make([]posGames, 0, len(totals))
	for code, g := range totals {
		ranked = append(ranked, posGames{code, g})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].games != ranked[j].games {
			return ranked[i].games > ranked[j].games
		}
		return ranked[i].code < ranked[j].code
	})

	parts := make([]string, 0, 4)
	for _, pg := range ranked {
		if len(parts) > 0 && pg.games < 3 {
			continue
		}
		if len(parts) >= 4 {
			break
		}
		parts = append(parts, pg.code)
	}
	if len(parts) == 0 {
		return ""
	}

	line := "*" + parts[0]
	if len(parts) > 1 {
		line += "/" + strings.Join(parts[1:], "/")
	}
	line = strings.ReplaceAll(line, "O", "OF")
	line = strings.ReplaceAll(line, "D", "DH")
	return line
}
