package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source for capture timestamps and the
// current-hour fetch window. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// Clock returns the active time source.
func Clock() clockwork.Clock {
	return clock
}

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
