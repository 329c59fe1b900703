package game

import (
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/pool"
	"github.com/ntbapp/ntb-server/internal/render"
)

type fakeSource struct {
	players map[string]domain.PlayerRecord
	batting map[string][]domain.BattingSeason
}

func (f *fakeSource) Player(id string) (domain.PlayerRecord, error) {
	p, ok := f.players[id]
	if !ok {
		return domain.PlayerRecord{}, errors.NotFoundf("player %q not found", id)
	}
	return p, nil
}
func (f *fakeSource) BattingSeasons(id string) []domain.BattingSeason   { return f.batting[id] }
func (f *fakeSource) PitchingSeasons(id string) []domain.PitchingSeason { return nil }
func (f *fakeSource) Awards(id string) []domain.AwardRecord             { return nil }
func (f *fakeSource) IsAllStar(id string, year int) bool                { return false }
func (f *fakeSource) PositionLine(id string, year int, team string) string {
	return ""
}
func (f *fakeSource) BatterIDs() []string {
	out := make([]string, 0, len(f.batting))
	for k := range f.batting {
		out = append(out, k)
	}
	return out
}
func (f *fakeSource) PitcherIDs() []string { return nil }

func twoPlayerSource() *fakeSource {
	return &fakeSource{
		players: map[string]domain.PlayerRecord{
			"star01": {ID: "star01", FirstName: "Sam", LastName: "Slugger", BirthYear: 1980},
			"pena01": {ID: "pena01", FirstName: "Tony", LastName: "Peña", BirthYear: 1957},
		},
		batting: map[string][]domain.BattingSeason{
			"star01": {{Year: 2005, Stint: 1, Team: "NYA", League: "AL", AB: 500, H: 150}},
			"pena01": {{Year: 1985, Stint: 1, Team: "PIT", League: "NL", AB: 520, H: 136}},
		},
	}
}

func testFilter() pool.Filter {
	return pool.Filter{Mode: domain.ModeBatting, MinYears: 1}
}

func testSession(t *testing.T, src Source) *Session {
	t.Helper()
	eligible, err := pool.Eligible(src, testFilter())
	require.NoError(t, err)
	s, err := newSession("sess-test", src, eligible, testFilter(), career.PreferStronger,
		rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	return s
}

func TestSessionGuessFlow(t *testing.T) {
	s := testSession(t, twoPlayerSource())

	st := s.State()
	assert.Equal(t, 1, st.Round)
	assert.False(t, st.Revealed)
	assert.Equal(t, render.HiddenName, st.PlayerName)

	st = s.Guess("Nobody Special")
	assert.False(t, st.Revealed)
	require.Len(t, st.Guesses, 1)
	assert.False(t, st.Guesses[0].Correct)
	assert.Zero(t, st.ScoreTotal)

	answer := s.cur.name
	st = s.Guess(answer)
	assert.True(t, st.Revealed)
	assert.Equal(t, answer, st.PlayerName)
	assert.Equal(t, 1, st.ScoreCorrect)
	assert.Equal(t, 1, st.ScoreTotal)
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, 1, st.BestStreak)

	// Guesses after the reveal change nothing, not even the history.
	st = s.Guess("Another Name")
	assert.Len(t, st.Guesses, 2)
	assert.Equal(t, 1, st.ScoreTotal)
}

func TestSessionGuessIgnoresAccentsAndCase(t *testing.T) {
	src := twoPlayerSource()
	delete(src.players, "star01")
	delete(src.batting, "star01")
	s := testSession(t, src)

	st := s.Guess("tony pena")
	assert.True(t, st.Revealed)
	assert.Equal(t, "Tony Peña", st.PlayerName)
}

func TestSessionHintLadder(t *testing.T) {
	src := twoPlayerSource()
	delete(src.players, "pena01")
	delete(src.batting, "pena01")
	s := testSession(t, src)

	assert.Equal(t, "S. S.", s.Hint().HintText)
	assert.Equal(t, "Sam S.", s.Hint().HintText)
	assert.Equal(t, "Sam Slu…", s.Hint().HintText)
	// The ladder ends; further requests repeat the last rung.
	assert.Equal(t, "Sam Slu…", s.Hint().HintText)
}

func TestSessionGiveUpAndNext(t *testing.T) {
	s := testSession(t, twoPlayerSource())

	s.Guess(s.cur.name)
	st, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, st.Round)
	assert.False(t, st.Revealed)
	assert.Empty(t, st.Guesses)
	assert.Empty(t, st.HintText)

	st = s.GiveUp()
	assert.True(t, st.Revealed)
	assert.Equal(t, 1, st.ScoreCorrect)
	assert.Equal(t, 2, st.ScoreTotal)
	assert.Zero(t, st.Streak)
	assert.Equal(t, 1, st.BestStreak)
}

func TestSessionImage(t *testing.T) {
	s := testSession(t, twoPlayerSource())

	hidden, err := s.Image()
	require.NoError(t, err)
	assert.NotEmpty(t, hidden)

	// Cached while nothing changed.
	again, err := s.Image()
	require.NoError(t, err)
	assert.Same(t, &hidden[0], &again[0])

	s.Guess(s.cur.name)
	revealed, err := s.Image()
	require.NoError(t, err)
	assert.NotEqual(t, hidden, revealed)
}

func TestSessionSkipsPlayersWithoutDisplayableSeasons(t *testing.T) {
	src := twoPlayerSource()
	// A player in the pool whose only line has no at-bats: dealt past.
	src.players["ghost01"] = domain.PlayerRecord{ID: "ghost01", FirstName: "Gone", LastName: "Ghost"}
	src.batting["ghost01"] = []domain.BattingSeason{{Year: 2000, AB: 0}}

	// MinYears 1 with no PA floor lets ghost01 into the pool.
	eligible, err := pool.Eligible(src, testFilter())
	require.NoError(t, err)
	assert.Contains(t, eligible, "ghost01")

	s, err := newSession("sess-test", src, eligible, testFilter(), career.PreferStronger,
		rand.New(rand.NewPCG(3, 3)))
	require.NoError(t, err)

	for range eligible {
		assert.NotEqual(t, "ghost01", s.cur.playerID)
		_, err := s.Next()
		require.NoError(t, err)
	}
}

func TestManager(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	m, err := NewManager(twoPlayerSource(), testFilter(), career.PreferStronger, log)
	require.NoError(t, err)

	s1, err := m.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, s1.ID)

	got, err := m.GetOrCreate(s1.ID)
	require.NoError(t, err)
	assert.Same(t, s1, got)

	s2, err := m.GetOrCreate("sess-unknown")
	require.NoError(t, err)
	assert.NotSame(t, s1, s2)
	assert.Equal(t, 2, m.Count())

	assert.Zero(t, m.PruneIdle(time.Minute))
	assert.Equal(t, 2, m.PruneIdle(-time.Second))
	assert.Zero(t, m.Count())
}

func TestManagerEmptyPool(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	_, err := NewManager(&fakeSource{}, testFilter(), career.PreferStronger, log)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoEligiblePlayers))
}
