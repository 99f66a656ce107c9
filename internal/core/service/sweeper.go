package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically evicts rooms older than TTL. Eviction is silent:
// participants learn of it when a later join or relay finds nothing.
type Sweeper struct {
	Table    *RoomTable
	TTL      time.Duration
	Interval time.Duration
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, code := range s.Table.Sweep(time.Now(), s.TTL) {
				log.Info().Str("room", code).Msg("expired room removed")
			}
		}
	}
}
