package moderation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vetlink/vetlink-api/internal/domain/account"
)

// Sweeper lifts bans whose scheduled unban_at has passed. Scheduled bans
// would otherwise never expire; nothing else reads unban_at.
type Sweeper struct {
	accounts account.Repository
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweeper creates a ban expiry sweeper
func NewSweeper(accounts account.Repository, interval time.Duration) *Sweeper {
	if interval == 0 {
		interval = 10 * time.Minute
	}
	return &Sweeper{
		accounts: accounts,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop
func (s *Sweeper) Start() {
	log.Info().Dur("interval", s.interval).Msg("Starting ban expiry sweeper...")
	go s.loop()
}

// Stop gracefully stops the sweeper
func (s *Sweeper) Stop() {
	log.Info().Msg("Stopping ban expiry sweeper...")
	close(s.stopCh)
}

func (s *Sweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run once immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.accounts.SweepExpiredBans(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep expired bans")
		return
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("Lifted expired bans")
	}
}
