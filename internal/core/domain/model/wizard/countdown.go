package wizard

import (
	"fmt"

	"bikerental/internal/pkg/errs"
)

// DefaultCountdownSeconds is how long the success screen stays before the
// redirect to the dashboard.
const DefaultCountdownSeconds = 5

// Countdown counts the success screen down to the redirect. It fires once.
type Countdown struct {
	remaining int
	fired     bool
}

func NewCountdown(seconds int) (Countdown, error) {
	if seconds <= 0 {
		return Countdown{}, errs.NewValueIsInvalidErrorWithCause("seconds", fmt.Errorf("%d is not positive", seconds))
	}
	return Countdown{remaining: seconds}, nil
}

// Tick advances the countdown by one second and reports whether the redirect
// must happen now. It returns true exactly once.
func (c *Countdown) Tick() bool {
	if c.fired {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.fired = true
		return true
	}
	return false
}

func (c Countdown) Remaining() int {
	return c.remaining
}

func (c Countdown) Fired() bool {
	return c.fired
}
