package career

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/pool"
)

type fakeSource struct {
	players   map[string]domain.PlayerRecord
	batting   map[string][]domain.BattingSeason
	pitching  map[string][]domain.PitchingSeason
	awards    map[string][]domain.AwardRecord
	allStar   map[string][]int
	positions map[string]string // "id/year" -> position line
}

func (f *fakeSource) Player(id string) (domain.PlayerRecord, error) {
	p, ok := f.players[id]
	if !ok {
		return domain.PlayerRecord{}, errors.NotFoundf("player %q not found", id)
	}
	return p, nil
}
func (f *fakeSource) BattingSeasons(id string) []domain.BattingSeason   { return f.batting[id] }
func (f *fakeSource) PitchingSeasons(id string) []domain.PitchingSeason { return f.pitching[id] }
func (f *fakeSource) Awards(id string) []domain.AwardRecord             { return f.awards[id] }
func (f *fakeSource) IsAllStar(id string, year int) bool {
	for _, y := range f.allStar[id] {
		if y == year {
			return true
		}
	}
	return false
}
func (f *fakeSource) PositionLine(id string, year int, team string) string {
	return f.positions[id]
}

func TestBuildUnknownPlayer(t *testing.T) {
	src := &fakeSource{players: map[string]domain.PlayerRecord{}}
	_, err := Build(src, "ghost01", domain.CategoryBatting)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBuildBatting(t *testing.T) {
	src := &fakeSource{
		players: map[string]domain.PlayerRecord{
			"star01": {ID: "star01", FirstName: "Sam", LastName: "Star", BirthYear: 1980},
		},
		batting: map[string][]domain.BattingSeason{
			"star01": {
				{Year: 2004, Stint: 1, Team: "NYA", League: "AL", AB: 500, H: 150, HR: 20, BB: 50},
				{Year: 2005, Stint: 1, Team: "NYA", League: "AL", AB: 300, H: 90, HR: 12, BB: 30},
				{Year: 2005, Stint: 2, Team: "CHN", League: "NL", AB: 200, H: 60, HR: 8, BB: 20},
				// A September call-up with no at-bats never reaches the table.
				{Year: 2006, Stint: 1, Team: "CHN", League: "NL", AB: 0},
			},
		},
		awards: map[string][]domain.AwardRecord{
			"star01": {
				{PlayerID: "star01", Year: 2004, Kind: domain.AwardMVP, VoteRank: 3},
				{PlayerID: "star01", Year: 2004, Kind: domain.AwardSilverSlugger},
			},
		},
		allStar:   map[string][]int{"star01": {2004}},
		positions: map[string]string{"star01": "*8/DH"},
	}

	table, err := Build(src, "star01", domain.CategoryBatting)
	require.NoError(t, err)
	require.Equal(t, 2, table.Seasons())

	first := table.Rows[0]
	assert.Equal(t, 2004, first.Year)
	assert.Equal(t, 24, first.Age)
	assert.Equal(t, "NYY", first.Team)
	assert.Equal(t, "*8/DH", first.Position)
	assert.Equal(t, []string{"AS", "MVP-3", "SS"}, first.Awards)

	merged := table.Rows[1]
	assert.Equal(t, "2TM", merged.Team)
	assert.Equal(t, "2LG", merged.League)
	assert.Equal(t, 500, merged.Batting.AB)
	assert.Empty(t, merged.Awards)

	totals := table.Totals
	assert.True(t, totals.Totals)
	assert.Equal(t, "2 Yrs", totals.Label)
	assert.Equal(t, 1000, totals.Batting.AB)
	assert.Equal(t, 300, totals.Batting.H)
	assert.InDelta(t, 0.300, totals.Batting.BA(), 1e-9)
}

func TestBuildPitchingOmitsSilverSlugger(t *testing.T) {
	src := &fakeSource{
		players: map[string]domain.PlayerRecord{
			"arm01": {ID: "arm01", FirstName: "Alex", LastName: "Arm", BirthYear: 1985},
		},
		pitching: map[string][]domain.PitchingSeason{
			"arm01": {
				{Year: 2010, Stint: 1, Team: "LAN", League: "NL", W: 15, IPOuts: 600, ER: 60, H: 180, BB: 50, SO: 190},
				{Year: 2011, Stint: 1, Team: "LAN", League: "NL", W: 20, IPOuts: 660, ER: 55, H: 170, BB: 40, SO: 230},
			},
		},
		awards: map[string][]domain.AwardRecord{
			"arm01": {
				{PlayerID: "arm01", Year: 2011, Kind: domain.AwardCyYoung, VoteRank: 1},
				{PlayerID: "arm01", Year: 2011, Kind: domain.AwardSilverSlugger},
			},
		},
	}

	table, err := Build(src, "arm01", domain.CategoryPitching)
	require.NoError(t, err)
	require.Equal(t, 2, table.Seasons())

	assert.Equal(t, "LAD", table.Rows[0].Team)
	assert.Equal(t, []string{"CY"}, table.Rows[1].Awards)

	totals := table.Totals
	assert.Equal(t, "2 Yrs", totals.Label)
	assert.Equal(t, 35, totals.Pitching.W)
	assert.Equal(t, 1260, totals.Pitching.IPOuts)
	assert.InDelta(t, 420.0, totals.Pitching.IP(), 1e-9)
	// ERA re-derived from summed earned runs and outs, not averaged.
	assert.InDelta(t, 9*115.0/420.0, totals.Pitching.ERA(), 1e-9)
}

func TestBuildSingleSeasonLabel(t *testing.T) {
	src := &fakeSource{
		players: map[string]domain.PlayerRecord{"one01": {ID: "one01"}},
		batting: map[string][]domain.BattingSeason{
			"one01": {{Year: 1999, Stint: 1, Team: "BOS", League: "AL", AB: 100, H: 25}},
		},
	}
	table, err := Build(src, "one01", domain.CategoryBatting)
	require.NoError(t, err)
	assert.Equal(t, "1 Yr", table.Totals.Label)
	// Unknown birth year leaves the age column blank.
	assert.Zero(t, table.Rows[0].Age)
}

func TestBuildEmptyWhenNoPlayingTime(t *testing.T) {
	src := &fakeSource{
		players: map[string]domain.PlayerRecord{"ph01": {ID: "ph01"}},
		batting: map[string][]domain.BattingSeason{
			"ph01": {{Year: 2000, Stint: 1, Team: "SLN", League: "NL", AB: 0}},
		},
	}
	table, err := Build(src, "ph01", domain.CategoryBatting)
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestChooseCategory(t *testing.T) {
	src := &fakeSource{
		players: map[string]domain.PlayerRecord{"tw01": {ID: "tw01"}},
		batting: map[string][]domain.BattingSeason{
			"tw01": {{Year: 2018, AB: 300}},
		},
		pitching: map[string][]domain.PitchingSeason{
			"tw01": {{Year: 2018, IPOuts: 1500}},
		},
	}
	f := pool.Filter{Mode: domain.ModeBoth, MinPA: 200, MinIP: 100}

	t.Run("fixed modes ignore the stats", func(t *testing.T) {
		assert.Equal(t, domain.CategoryBatting,
			ChooseCategory(src, "tw01", pool.Filter{Mode: domain.ModeBatting}, PreferStronger, nil))
		assert.Equal(t, domain.CategoryPitching,
			ChooseCategory(src, "tw01", pool.Filter{Mode: domain.ModePitching}, PreferStronger, nil))
	})

	t.Run("prefer stronger picks the side further above its threshold", func(t *testing.T) {
		// 1500 outs against a 300-out floor beats 300 AB against 200.
		assert.Equal(t, domain.CategoryPitching, ChooseCategory(src, "tw01", f, PreferStronger, nil))
	})

	t.Run("single qualifier wins regardless of policy", func(t *testing.T) {
		strict := pool.Filter{Mode: domain.ModeBoth, MinPA: 1000, MinIP: 100}
		assert.Equal(t, domain.CategoryPitching, ChooseCategory(src, "tw01", strict, RandomWhenBoth, nil))
	})

	t.Run("random policy is seed-deterministic", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		got := ChooseCategory(src, "tw01", f, RandomWhenBoth, rng)
		rng2 := rand.New(rand.NewPCG(1, 2))
		assert.Equal(t, got, ChooseCategory(src, "tw01", f, RandomWhenBoth, rng2))
	})
}
