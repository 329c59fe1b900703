package providers

import (
	"github.com/samber/do/v2"

	"github.com/ntbapp/ntb-server/internal/config"
	"github.com/ntbapp/ntb-server/internal/lahman"
	"github.com/ntbapp/ntb-server/internal/logger"
)

// ProvideStore loads the Lahman tables into the in-memory record store.
func ProvideStore(i do.Injector) (*lahman.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := lahman.Load(cfg.Data.Dir, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Record store loaded",
		"dir", cfg.Data.Dir,
		"batters", len(store.BatterIDs()),
		"pitchers", len(store.PitcherIDs()),
	)

	return store, nil
}
