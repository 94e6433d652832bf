package adapters

import (
	"time"

	"portfolio_chart/internal/feature/contact/usecase"
)

// Clock schedules calls on the runtime timer.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, fn func()) usecase.Timer {
	return time.AfterFunc(d, fn)
}
