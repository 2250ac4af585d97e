package cron

import (
	"context"
	"log"
	"time"
)

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// StartSweepTask sweeps once immediately, then every interval until ctx is
// cancelled. The returned channel is closed when the task has stopped.
func StartSweepTask(ctx context.Context, name string, s Sweeper, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("Starting background %s sweep (every %s)", name, interval)

		// Run immediately on startup
		sweep(name, s)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Printf("Stopping %s sweep", name)
				return
			case <-ticker.C:
				sweep(name, s)
			}
		}
	}()
	return done
}

func sweep(name string, s Sweeper) {
	if n := s.Sweep(); n > 0 {
		log.Printf("%s sweep removed %d expired entries", name, n)
	}
}
