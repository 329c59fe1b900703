package game

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/errors"
	"github.com/ntbapp/ntb-server/internal/id"
	"github.com/ntbapp/ntb-server/internal/pool"
)

// Manager owns the live sessions, keyed by token. The eligible pool is
// computed once at construction; every session deals from its own
// shuffled copy.
type Manager struct {
	src      Source
	filter   pool.Filter
	policy   career.Policy
	eligible []string
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager computes the eligible pool and prepares the session table.
// Fails with NO_ELIGIBLE_PLAYERS when the filters leave nothing to play.
func NewManager(src Source, f pool.Filter, policy career.Policy, log *slog.Logger) (*Manager, error) {
	eligible, err := pool.Eligible(src, f)
	if err != nil {
		return nil, err
	}
	log.Info("Eligible pool built", "players", len(eligible), "mode", f.Mode)

	return &Manager{
		src:      src,
		filter:   f,
		policy:   policy,
		eligible: eligible,
		log:      log,
		sessions: make(map[string]*Session),
	}, nil
}

// Get returns the session for a token.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Create starts a new session with a fresh token and its first round
// already dealt.
func (m *Manager) Create() (*Session, error) {
	token, err := id.Generate("sess")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate session token")
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	s, err := newSession(token, m.src, m.eligible, m.filter, m.policy, rng)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()

	m.log.Debug("Session created", "session", token, "pool", len(m.eligible))
	return s, nil
}

// GetOrCreate resolves a token to its session, creating a new one when
// the token is empty or unknown (a restarted server forgets sessions by
// design; the client just starts a fresh game).
func (m *Manager) GetOrCreate(token string) (*Session, error) {
	if token != "" {
		if s, ok := m.Get(token); ok {
			return s, nil
		}
	}
	return m.Create()
}

// Source returns the record source the manager deals from.
func (m *Manager) Source() Source {
	return m.src
}

// PoolSize returns the size of the eligible player pool.
func (m *Manager) PoolSize() int {
	return len(m.eligible)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// PruneIdle drops sessions idle for longer than maxIdle and reports how
// many were removed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	pruned := 0
	for token, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, token)
			pruned++
		}
	}
	if pruned > 0 {
		m.log.Debug("Pruned idle sessions", "count", pruned, "remaining", len(m.sessions))
	}
	return pruned
}
