// Package di provides dependency injection configuration for the game server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/ntbapp/ntb-server/internal/config"
	"github.com/ntbapp/ntb-server/internal/di/providers"
	"github.com/ntbapp/ntb-server/internal/lahman"
	"github.com/ntbapp/ntb-server/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideStore)

	// Game layer
	do.Provide(injector, providers.ProvideGameManager)
	do.Provide(injector, providers.ProvideGuessLimiter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is up.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*lahman.Store](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.GameManagerHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.GuessLimiterHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
