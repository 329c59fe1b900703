// Package career assembles a player's seasons, awards, and position
// labels into the renderable career table for one round.
package career

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/pool"
)

// Source is the slice of the record store the aggregator reads.
type Source interface {
	Player(id string) (domain.PlayerRecord, error)
	BattingSeasons(id string) []domain.BattingSeason
	PitchingSeasons(id string) []domain.PitchingSeason
	Awards(id string) []domain.AwardRecord
	IsAllStar(id string, year int) bool
	PositionLine(playerID string, year int, team string) string
}

// Build aggregates a player's career in one category: stints merged to
// one row per year, award codes and All-Star selections attached, and a
// totals row derived from the summed counting stats. Seasons with no
// playing time in the category (zero at-bats, zero outs recorded) are
// dropped from display, so the table can come back empty for a player
// who only appears in the other category's tables.
func Build(src Source, playerID string, category domain.Category) (*domain.CareerTable, error) {
	player, err := src.Player(playerID)
	if err != nil {
		return nil, err
	}

	t := &domain.CareerTable{PlayerID: playerID, Category: category}
	switch category {
	case domain.CategoryBatting:
		buildBatting(src, player, t)
	case domain.CategoryPitching:
		buildPitching(src, player, t)
	default:
		return nil, errors.Validation(fmt.Sprintf("unknown category %q", category))
	}
	return t, nil
}

func buildBatting(src Source, player domain.PlayerRecord, t *domain.CareerTable) {
	var active []domain.BattingSeason
	for _, s := range src.BattingSeasons(player.ID) {
		if s.AB > 0 {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return
	}

	merged := domain.MergeBattingStints(active)
	for _, s := range merged {
		t.Rows = append(t.Rows, domain.CareerRow{
			Year:     s.Year,
			Age:      player.AgeIn(s.Year),
			Team:     displayTeam(s.Team),
			League:   s.League,
			Position: src.PositionLine(player.ID, s.Year, s.Team),
			Awards:   awardCodes(src, player.ID, s.Year, domain.CategoryBatting),
			Batting:  s,
		})
	}

	t.Totals = domain.CareerRow{
		Totals:  true,
		Label:   yearsLabel(len(merged)),
		Batting: domain.SumBatting(merged),
	}
}

func buildPitching(src Source, player domain.PlayerRecord, t *domain.CareerTable) {
	var active []domain.PitchingSeason
	for _, s := range src.PitchingSeasons(player.ID) {
		if s.IPOuts > 0 {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return
	}

	merged := domain.MergePitchingStints(active)
	for _, s := range merged {
		t.Rows = append(t.Rows, domain.CareerRow{
			Year:     s.Year,
			Age:      player.AgeIn(s.Year),
			Team:     displayTeam(s.Team),
			League:   s.League,
			Awards:   awardCodes(src, player.ID, s.Year, domain.CategoryPitching),
			Pitching: s,
		})
	}

	t.Totals = domain.CareerRow{
		Totals:   true,
		Label:    yearsLabel(len(merged)),
		Pitching: domain.SumPitching(merged),
	}
}

func yearsLabel(n int) string {
	if n == 1 {
		return "1 Yr"
	}
	return fmt.Sprintf("%d Yrs", n)
}

// awardCodes returns the sorted, deduplicated award codes for a player
// year. Pitching tables omit Silver Sluggers: the table has no batting
// columns to justify them.
func awardCodes(src Source, playerID string, year int, category domain.Category) []string {
	var codes []string
	if src.IsAllStar(playerID, year) {
		codes = append(codes, domain.AllStarCode)
	}
	for _, a := range src.Awards(playerID) {
		if a.Year != year {
			continue
		}
		if category == domain.CategoryPitching && a.Kind == domain.AwardSilverSlugger {
			continue
		}
		codes = append(codes, a.Code())
	}

	sort.Strings(codes)
	out := codes[:0]
	for i, c := range codes {
		if i == 0 || codes[i-1] != c {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Policy decides the category for a player who qualifies both ways under
// mode "both".
type Policy int

const (
	// PreferStronger picks deterministically by comparing career volume
	// against the filter thresholds.
	PreferStronger Policy = iota
	// RandomWhenBoth flips a coin for genuine two-way players.
	RandomWhenBoth
)

// ChooseCategory decides which career table to show for a player under
// the active filter. Fixed modes return their category outright. Under
// mode "both", a player clearing only one volume threshold gets that
// category; a player clearing both gets the policy's pick.
func ChooseCategory(src Source, playerID string, f pool.Filter, policy Policy, rng *rand.Rand) domain.Category {
	switch f.Mode {
	case domain.ModeBatting:
		return domain.CategoryBatting
	case domain.ModePitching:
		return domain.CategoryPitching
	}

	ab := 0
	for _, s := range src.BattingSeasons(playerID) {
		ab += s.AB
	}
	outs := 0
	for _, s := range src.PitchingSeasons(playerID) {
		outs += s.IPOuts
	}

	batQualifies := ab >= f.MinPA
	pitchQualifies := outs >= f.MinIP*3

	switch {
	case batQualifies && pitchQualifies:
		if policy == RandomWhenBoth && rng != nil {
			if rng.IntN(2) == 0 {
				return domain.CategoryBatting
			}
			return domain.CategoryPitching
		}
		// Stronger side: compare each volume as a multiple of its
		// threshold so the two scales are commensurable.
		if float64(outs)*float64(max(f.MinPA, 1)) > float64(ab)*float64(max(f.MinIP*3, 1)) {
			return domain.CategoryPitching
		}
		return domain.CategoryBatting
	case batQualifies:
		return domain.CategoryBatting
	default:
		return domain.CategoryPitching
	}
}
