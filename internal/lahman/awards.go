package lahman

import (
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ntbapp/ntb-server/internal/domain"
)

// awardRow is one outright award win from AwardsPlayers.csv.
type awardRow struct {
	playerID string
	year     int
	kind     domain.AwardKind
}

// shareRecord is one voting result from AwardsSharePlayers.csv, before
// ranking.
type shareRecord struct {
	playerID string
	year     int
	league   string
	kind     domain.AwardKind
	points   float64
	rank     int
}

// classifyAward maps a Lahman awardID onto the kinds the table shows.
// Awards outside the recognized set (e.g. TSN All-Star, Triple Crown)
// are ignored.
func classifyAward(awardID string) (domain.AwardKind, bool) {
	switch {
	case strings.Contains(awardID, "Most Valuable Player"), strings.Contains(awardID, "MVP"):
		return domain.AwardMVP, true
	case strings.Contains(awardID, "Cy Young"):
		return domain.AwardCyYoung, true
	case strings.Contains(awardID, "Gold Glove"):
		return domain.AwardGoldGlove, true
	case strings.Contains(awardID, "Silver Slugger"):
		return domain.AwardSilverSlugger, true
	case strings.Contains(awardID, "Rookie"):
		return domain.AwardRookie, true
	default:
		return "", false
	}
}

// loadAwardRows parses the outright award wins. Returns nil (no error)
// when the table is absent.
func loadAwardRows(path string, log *slog.Logger) ([]awardRow, error) {
	if _, err := os.Stat(path); err != nil {
		log.Warn("Awards table not found, award wins will not be annotated", "file", awardsFile)
		return nil, nil
	}
	t, err := readTable(path, awardsFile, "playerID", "awardID", "yearID")
	if err != nil {
		return nil, err
	}

	rows := make([]awardRow, 0, len(t.rows))
	for i, row := range t.rows {
		kind, ok := classifyAward(t.str(row, "awardID"))
		if !ok {
			continue
		}
		year, err := t.intCol(row, "yearID", i+2)
		if err != nil {
			return nil, err
		}
		rows = append(rows, awardRow{
			playerID: t.str(row, "playerID"),
			year:     year,
			kind:     kind,
		})
	}

	log.Debug("Loaded award wins", "rows", len(rows))
	return rows, nil
}

// loadAwardShares parses the voting results and ranks them by points won
// within each (award, year, league) group, ties sharing the lower rank.
// Returns nil (no error) when the table is absent.
func loadAwardShares(path string, log *slog.Logger) ([]shareRecord, error) {
	if _, err := os.Stat(path); err != nil {
		log.Warn("Award shares table not found, vote rankings will not be annotated", "file", awardsShareFile)
		return nil, nil
	}
	t, err := readTable(path, awardsShareFile, "playerID", "awardID", "yearID", "lgID", "pointsWon")
	if err != nil {
		return nil, err
	}

	shares := make([]shareRecord, 0, len(t.rows))
	for i, row := range t.rows {
		kind, ok := classifyAward(t.str(row, "awardID"))
		if !ok {
			continue
		}
		year, err := t.intCol(row, "yearID", i+2)
		if err != nil {
			return nil, err
		}
		points, err := t.floatCol(row, "pointsWon", i+2)
		if err != nil {
			return nil, err
		}
		shares = append(shares, shareRecord{
			playerID: t.str(row, "playerID"),
			year:     year,
			league:   t.str(row, "lgID"),
			kind:     kind,
			points:   points,
		})
	}

	rankShares(shares)
	log.Debug("Loaded award shares", "rows", len(shares))
	return shares, nil
}

// rankShares assigns competition ranking (1,2,2,4) per (kind, year, league)
// group by descending points.
func rankShares(shares []shareRecord) {
	type groupKey struct {
		kind   domain.AwardKind
		year   int
		league string
	}

	groups := make(map[groupKey][]int)
	for i, s := range shares {
		k := groupKey{s.kind, s.year, s.league}
		groups[k] = append(groups[k], i)
	}

	for _, idx := range groups {
		sort.SliceStable(idx, func(a, b int) bool {
			return shares[idx[a]].points > shares[idx[b]].points
		})
		for pos, i := range idx {
			if pos > 0 && shares[i].points == shares[idx[pos-1]].points {
				shares[i].rank = shares[idx[pos-1]].rank
			} else {
				shares[i].rank = pos + 1
			}
		}
	}
}

// buildAwards merges the voting results and outright wins into the
// per-player award index. Voting results take precedence for the kinds
// the share table covers, so a win appears once with its rank; outright
// rows fill in kinds that never appear in the share table (Gold Glove,
// Silver Slugger) and years predating share data.
func (s *Store) buildAwards(rows []awardRow, shares []shareRecord) {
	type seen struct {
		playerID string
		year     int
		kind     domain.AwardKind
	}
	covered := make(map[seen]struct{}, len(shares))

	for _, sh := range shares {
		covered[seen{sh.playerID, sh.year, sh.kind}] = struct{}{}
		s.awards[sh.playerID] = append(s.awards[sh.playerID], domain.AwardRecord{
			PlayerID: sh.playerID,
			Year:     sh.year,
			Kind:     sh.kind,
			VoteRank: sh.rank,
		})
	}

	for _, r := range rows {
		if _, ok := covered[seen{r.playerID, r.year, r.kind}]; ok {
			continue
		}
		s.awards[r.playerID] = append(s.awards[r.playerID], domain.AwardRecord{
			PlayerID: r.playerID,
			Year:     r.year,
			Kind:     r.kind,
		})
	}

	for _, list := range s.awards {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Year != list[j].Year {
				return list[i].Year < list[j].Year
			}
			return list[i].Kind < list[j].Kind
		})
	}
}
