package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/playbox/pkg/domain"
)

// StreamManager fans lifecycle events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
		logger:      logger,
	}
}

// Subscribe returns a buffered channel of JSON events and its cancel func.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 32)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Subscribers returns the number of connected subscribers.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast never blocks: slow subscribers lose messages.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// Hooks publishes every lifecycle event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter:        publish[*domain.StateEvent](sm),
		OnStateExit:         publish[*domain.StateEvent](sm),
		OnInnerStateChanged: publish[*domain.InnerStateChangedEvent](sm),
		OnTransition:        publish[*domain.TransitionEvent](sm),
		OnEffectError:       publish[*domain.EffectErrorEvent](sm),
	}
}

func publish[E any](sm *StreamManager) func(context.Context, E) {
	return func(_ context.Context, e E) {
		if sm.Subscribers() == 0 {
			return
		}
		data, err := json.Marshal(e)
		if err != nil {
			sm.logger.Error("event encode failed", "err", err)
			return
		}
		sm.Broadcast(string(data))
	}
}
