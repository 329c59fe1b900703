// Package game runs guessing rounds: it deals hidden players from the
// eligible pool and tracks guesses, hints, and scores per session.
package game

import (
	"bytes"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/normalize"
	"github.com/ntbapp/ntb-server/internal/pool"
	"github.com/ntbapp/ntb-server/internal/render"
)

// Source is the record store surface the game reads. It covers both the
// eligibility scan and the per-round career aggregation.
type Source interface {
	career.Source
	pool.Source
}

// GuessResult is one submitted guess and its verdict.
type GuessResult struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// State is the client-visible snapshot of a session. PlayerName carries
// the masked placeholder until the round is revealed.
type State struct {
	Round        int           `json:"round"`
	ScoreCorrect int           `json:"scoreCorrect"`
	ScoreTotal   int           `json:"scoreTotal"`
	Streak       int           `json:"streak"`
	BestStreak   int           `json:"bestStreak"`
	Revealed     bool          `json:"revealed"`
	PlayerName   string        `json:"playerName"`
	HintText     string        `json:"hintText,omitempty"`
	Guesses      []GuessResult `json:"guesses,omitempty"`
}

// round is the hidden player currently on the table.
type round struct {
	playerID string
	name     string
	category domain.Category
	table    *domain.CareerTable
}

// Session is one player's independent game. All methods are safe for
// concurrent use; the HTTP layer may hit the same session from parallel
// requests.
type Session struct {
	ID string

	mu         sync.Mutex
	src        Source
	filter     pool.Filter
	policy     career.Policy
	rng        *rand.Rand
	pool       []string
	idx        int
	roundNum   int
	cur        round
	revealed   bool
	hintsGiven int
	hintText   string
	guesses    []GuessResult
	correct    int
	total      int
	streak     int
	best       int
	lastActive time.Time

	// imageCache holds the rendered PNG for (roundNum, revealed) so
	// repeated polls of the image route do not redraw the table.
	imageKey   imageKey
	imageBytes []byte
}

type imageKey struct {
	round    int
	revealed bool
}

func newSession(id string, src Source, eligible []string, f pool.Filter, policy career.Policy, rng *rand.Rand) (*Session, error) {
	s := &Session{
		ID:         id,
		src:        src,
		filter:     f,
		policy:     policy,
		rng:        rng,
		pool:       append([]string(nil), eligible...),
		idx:        -1,
		lastActive: time.Now(),
	}
	rng.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	if err := s.deal(); err != nil {
		return nil, err
	}
	return s, nil
}

// deal advances to the next player with a displayable table. Players
// whose table comes back empty in the chosen category are skipped, so a
// full lap through the pool without a hit means the filters and data
// disagree badly enough to surface as an error.
func (s *Session) deal() error {
	for range s.pool {
		s.idx = (s.idx + 1) % len(s.pool)
		playerID := s.pool[s.idx]

		category := career.ChooseCategory(s.src, playerID, s.filter, s.policy, s.rng)
		table, err := career.Build(s.src, playerID, category)
		if err != nil {
			return err
		}
		if table.Empty() {
			continue
		}

		player, err := s.src.Player(playerID)
		if err != nil {
			return err
		}

		s.roundNum++
		s.cur = round{playerID: playerID, name: player.FullName(), category: category, table: table}
		s.revealed = false
		s.hintsGiven = 0
		s.hintText = ""
		s.guesses = nil
		return nil
	}
	return errors.NoEligiblePlayers("no player in the pool has a displayable stat line")
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	s.lastActive = time.Now()
	name := render.HiddenName
	if s.revealed {
		name = s.cur.name
	}
	return State{
		Round:        s.roundNum,
		ScoreCorrect: s.correct,
		ScoreTotal:   s.total,
		Streak:       s.streak,
		BestStreak:   s.best,
		Revealed:     s.revealed,
		PlayerName:   name,
		HintText:     s.hintText,
		Guesses:      append([]GuessResult(nil), s.guesses...),
	}
}

// Guess submits a guess. A correct guess reveals the player and scores
// the round; a wrong one is recorded for the guess history. Guesses
// after the reveal are ignored.
func (s *Session) Guess(text string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revealed || text == "" {
		return s.state()
	}

	correct := normalize.Equal(text, s.cur.name)
	s.guesses = append(s.guesses, GuessResult{Text: text, Correct: correct})
	if correct {
		s.revealed = true
		s.correct++
		s.total++
		s.streak++
		if s.streak > s.best {
			s.best = s.streak
		}
	}
	return s.state()
}

// Hint advances the hint ladder and returns the new state.
func (s *Session) Hint() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.revealed {
		s.hintsGiven++
		s.hintText = hintText(s.cur.name, s.hintsGiven)
	}
	return s.state()
}

// GiveUp reveals the player, scores the round as a miss, and resets the
// streak.
func (s *Session) GiveUp() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.revealed {
		s.revealed = true
		s.total++
		s.streak = 0
	}
	return s.state()
}

// Next deals the next round.
func (s *Session) Next() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deal(); err != nil {
		return State{}, err
	}
	return s.state(), nil
}

// Image renders the current round's table as a PNG, with the name in
// the title only after the reveal.
func (s *Session) Image() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := imageKey{round: s.roundNum, revealed: s.revealed}
	if s.imageBytes != nil && s.imageKey == key {
		return s.imageBytes, nil
	}

	reveal := ""
	if s.revealed {
		reveal = s.cur.name
	}
	img, err := render.Render(s.cur.table, reveal)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	s.imageKey = key
	s.imageBytes = buf.Bytes()
	return s.imageBytes, nil
}

// LastActive reports when the session was last touched.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
