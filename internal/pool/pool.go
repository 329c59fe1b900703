// Package pool computes the set of players eligible to be the hidden
// answer under the active difficulty filters.
package pool

import (
	"fmt"
	"sort"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
)

// Source is the slice of the record store the filter reads.
type Source interface {
	BatterIDs() []string
	PitcherIDs() []string
	BattingSeasons(id string) []domain.BattingSeason
	PitchingSeasons(id string) []domain.PitchingSeason
}

// Era bounds debut years, inclusive on both ends.
type Era struct {
	Start int `json:"start" validate:"omitempty,min=1871"`
	End   int `json:"end"   validate:"omitempty,gtefield=Start"`
}

// Contains reports whether a debut year falls inside the era. A zero
// bound leaves that side open.
func (e Era) Contains(year int) bool {
	if e.Start != 0 && year < e.Start {
		return false
	}
	if e.End != 0 && year > e.End {
		return false
	}
	return true
}

func (e Era) String() string {
	if e.Start == 0 && e.End == 0 {
		return "any"
	}
	return fmt.Sprintf("%d-%d", e.Start, e.End)
}

// Filter holds the difficulty knobs. MinPA applies to batters, MinIP to
// pitchers; under mode "both" a player qualifies through either
// category. Plate appearances are approximated by at-bats, matching the
// source data's coverage of early seasons.
type Filter struct {
	Mode     domain.Mode `json:"mode"     validate:"required,oneof=batting pitching both"`
	MinYears int         `json:"minYears" validate:"min=1"`
	MinPA    int         `json:"minPA"    validate:"min=0"`
	MinIP    int         `json:"minIP"    validate:"min=0"`
	Era      Era         `json:"era"`
}

// Eligible returns the sorted IDs of players passing the filter.
// Returns a NO_ELIGIBLE_PLAYERS error when the set is empty so callers
// can prompt for looser settings instead of failing hard.
func Eligible(src Source, f Filter) ([]string, error) {
	set := make(map[string]struct{})

	if f.Mode.Includes(domain.CategoryBatting) {
		for _, id := range src.BatterIDs() {
			if qualifiesBatting(src.BattingSeasons(id), f) {
				set[id] = struct{}{}
			}
		}
	}
	if f.Mode.Includes(domain.CategoryPitching) {
		for _, id := range src.PitcherIDs() {
			if qualifiesPitching(src.PitchingSeasons(id), f) {
				set[id] = struct{}{}
			}
		}
	}

	if len(set) == 0 {
		return nil, errors.NoEligiblePlayers(fmt.Sprintf(
			"no players match mode=%s minYears=%d minPA=%d minIP=%d era=%s",
			f.Mode, f.MinYears, f.MinPA, f.MinIP, f.Era))
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func qualifiesBatting(seasons []domain.BattingSeason, f Filter) bool {
	if len(seasons) == 0 {
		return false
	}
	years := make(map[int]struct{})
	ab := 0
	debut := seasons[0].Year
	for _, s := range seasons {
		years[s.Year] = struct{}{}
		ab += s.AB
		if s.Year < debut {
			debut = s.Year
		}
	}
	return len(years) >= f.MinYears && ab >= f.MinPA && f.Era.Contains(debut)
}

func qualifiesPitching(seasons []domain.PitchingSeason, f Filter) bool {
	if len(seasons) == 0 {
		return false
	}
	years := make(map[int]struct{})
	outs := 0
	debut := seasons[0].Year
	for _, s := range seasons {
		years[s.Year] = struct{}{}
		outs += s.IPOuts
		if s.Year < debut {
			debut = s.Year
		}
	}
	// Compare in outs so a fractional career total never rounds a
	// borderline pitcher in or out.
	return len(years) >= f.MinYears && outs >= f.MinIP*3 && f.Era.Contains(debut)
}
