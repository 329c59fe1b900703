// Package providers contains dependency injection providers for the game server.
package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// prunePeriod is how often idle game sessions are swept.
	prunePeriod = 10 * time.Minute
)
