package bridge

import (
	"context"
	"time"

	"github.com/hrolfurgylfa/vrchat-light-sync/internal/avatar"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/bulb"
	"github.com/hrolfurgylfa/vrchat-light-sync/internal/logger"
)

// Bridge mirrors a bulb's state onto VRChat avatar parameters. Each cycle
// dispatches the state fetched at the end of the previous cycle, so what
// the avatar shows trails the bulb by up to one cycle.
type Bridge struct {
	provider bulb.Provider
	sink     avatar.Sink
	period   time.Duration

	// Swappable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// New creates a Bridge that dispatches at most maxUpdatesPerSecond times
// per second. The rate must already be validated; the loop itself does not
// guard against a non-positive value.
func New(provider bulb.Provider, sink avatar.Sink, maxUpdatesPerSecond int) *Bridge {
	return &Bridge{
		provider: provider,
		sink:     sink,
		period:   time.Second / time.Duration(maxUpdatesPerSecond),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Run polls until ctx is canceled or a fetch fails. The first observed
// state is dispatched unconditionally so the avatar starts out in sync;
// after that only changes go out. A fetch failure is fatal and is returned
// to the caller untouched.
func (b *Bridge) Run(ctx context.Context) error {
	state, err := b.provider.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}
	oldState := state
	b.dispatch(state)

	for {
		start := b.now()

		if state != oldState {
			b.dispatch(state)
		}

		// Pace the loop: sleep off whatever the dispatch phase left of the
		// period. An over-budget cycle skips the sleep and carries on.
		if elapsed := b.now().Sub(start); elapsed < b.period {
			b.sleep(ctx, b.period-elapsed)
		}
		logger.Debug().Dur("elapsed", b.now().Sub(start)).Msg("")

		if ctx.Err() != nil {
			return nil
		}

		// The state fetched here is not dispatched until the next cycle.
		oldState = state
		state, err = b.provider.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}
	}
}

// sleepContext waits for d or until ctx is canceled, whichever comes first
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
