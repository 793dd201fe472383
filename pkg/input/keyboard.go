// Package input turns raw key presses into per-tick down edges.
package input

import (
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/playbox/pkg/domain"
)

// Keyboard tracks held keys and the down edges since the last frame.
// Key sources may call Press and Release from their own goroutine.
type Keyboard struct {
	mu    sync.Mutex
	held  map[domain.Key]bool
	edges map[domain.Key]bool
}

// NewKeyboard creates a keyboard with no key held.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		held:  make(map[domain.Key]bool),
		edges: make(map[domain.Key]bool),
	}
}

// Press marks key as held. Only the transition from released to held
// produces a down edge; auto-repeat does not.
func (k *Keyboard) Press(key domain.Key) {
	key = Normalize(key)
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.held[key] {
		k.edges[key] = true
	}
	k.held[key] = true
}

// Release marks key as released.
func (k *Keyboard) Release(key domain.Key) {
	key = Normalize(key)
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
}

// Tap presses and releases key. The down edge survives until the next frame.
func (k *Keyboard) Tap(key domain.Key) {
	k.Press(key)
	k.Release(key)
}

// Held reports whether key is currently down.
func (k *Keyboard) Held(key domain.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[Normalize(key)]
}

// Frame consumes the pending down edges into a tick frame.
func (k *Keyboard) Frame(now, delta time.Duration) domain.Frame {
	k.mu.Lock()
	defer k.mu.Unlock()
	f := domain.Frame{Time: now, Delta: delta}
	if len(k.edges) > 0 {
		f.Pressed = maps.Clone(k.edges)
		clear(k.edges)
	}
	return f
}

// Normalize lowercases key names and maps a literal space to "space".
func Normalize(key domain.Key) domain.Key {
	if key == " " {
		return "space"
	}
	return domain.Key(strings.ToLower(strings.TrimSpace(string(key))))
}
