package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/config"
	"github.com/ntbapp/ntb-server/internal/game"
	"github.com/ntbapp/ntb-server/internal/lahman"
	"github.com/ntbapp/ntb-server/internal/logger"
	"github.com/ntbapp/ntb-server/internal/ratelimit"
)

// GameManagerHandle wraps the session manager with its prune loop for
// lifecycle management.
type GameManagerHandle struct {
	*game.Manager
	done chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *GameManagerHandle) Shutdown() error {
	close(h.done)
	return nil
}

// ProvideGameManager builds the eligible pool and starts the idle
// session sweeper.
func ProvideGameManager(i do.Injector) (*GameManagerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*lahman.Store](i)

	policy := career.PreferStronger
	if cfg.Game.CategoryPolicy == "random" {
		policy = career.RandomWhenBoth
	}

	manager, err := game.NewManager(store, cfg.Filter(), policy, log.Logger)
	if err != nil {
		return nil, err
	}

	h := &GameManagerHandle{
		Manager: manager,
		done:    make(chan struct{}),
	}

	maxIdle := cfg.Server.SessionIdleTimeout
	go func() {
		ticker := time.NewTicker(prunePeriod)
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				manager.PruneIdle(maxIdle)
			}
		}
	}()

	return h, nil
}

// GuessLimiterHandle wraps the per-session guess rate limiter.
type GuessLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *GuessLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideGuessLimiter provides the per-session guess rate limiter.
func ProvideGuessLimiter(i do.Injector) (*GuessLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &GuessLimiterHandle{
		KeyedRateLimiter: ratelimit.New(cfg.Server.GuessRPS, cfg.Server.GuessBurst),
	}, nil
}
