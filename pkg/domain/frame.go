package domain

import "time"

// Key names a keyboard key or button, e.g. "space", "w", "enter".
type Key string

// Frame is the snapshot handed to polled transitions on every tick.
type Frame struct {
	// Time is the scene time at the start of the tick.
	Time time.Duration
	// Delta is the time elapsed since the previous tick.
	Delta time.Duration
	// Pressed holds the keys whose down-edge happened during this tick.
	Pressed map[Key]bool
}

// KeyDown reports whether key went down during this tick.
func (f Frame) KeyDown(key Key) bool {
	return f.Pressed[key]
}
