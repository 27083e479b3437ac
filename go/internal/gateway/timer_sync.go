package gateway

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// TimerLoop is the external periodic tick the session relies on: once
// per second it advances the countdown and broadcasts a timer sync.
// The session schedules nothing itself.
type TimerLoop struct {
	service *Service
	clock   clockwork.Clock
}

// NewTimerLoop creates the once-per-second driver. In tests pass a
// clockwork.FakeClock and advance it manually.
func NewTimerLoop(service *Service, clock clockwork.Clock) *TimerLoop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TimerLoop{service: service, clock: clock}
}

// Run ticks until the context is cancelled.
func (t *TimerLoop) Run(ctx context.Context) {
	log.Info().Msg("timer loop started")
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("timer loop shutting down")
			return
		case <-ticker.Chan():
			t.service.TickAndBroadcast()
		}
	}
}
