package pantryclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrUndoUnavailable is returned when the affordance was already used,
// dismissed, or timed out.
var ErrUndoUnavailable = errors.New("undo no longer available")

// MutationState tracks one optimistic mutation through its lifetime.
type MutationState int

const (
	// StateIdle: no undo pending; either nothing happened yet or the
	// affordance is spent.
	StateIdle MutationState = iota
	// StateApplied: the mutation landed and the inverse can still be
	// issued.
	StateApplied
	// StateReverting: the inverse mutation is in flight.
	StateReverting
)

// UndoHandle is the affordance offered after a successful mutation. It
// holds the inverse mutation behind a timer; letting the timer lapse is
// the same as dismissing it.
type UndoHandle struct {
	mu       sync.Mutex
	state    MutationState
	timer    *time.Timer
	invert   func(ctx context.Context) error
	onUndone func()
}

func newUndoHandle(ttl time.Duration, invert func(ctx context.Context) error, onUndone func()) *UndoHandle {
	h := &UndoHandle{
		state:    StateApplied,
		invert:   invert,
		onUndone: onUndone,
	}
	// Arm under the lock: a callback firing immediately blocks in Dismiss
	// until the timer assignment is visible.
	h.mu.Lock()
	h.timer = time.AfterFunc(ttl, h.Dismiss)
	h.mu.Unlock()
	return h
}

func (h *UndoHandle) State() MutationState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Undo issues the inverse mutation. If the inverse fails the handle goes
// back to applied so the caller may retry; on success the affordance is
// spent.
func (h *UndoHandle) Undo(ctx context.Context) error {
	h.mu.Lock()
	if h.state != StateApplied {
		h.mu.Unlock()
		return ErrUndoUnavailable
	}
	h.state = StateReverting
	h.mu.Unlock()

	err := h.invert(ctx)

	h.mu.Lock()
	if err != nil {
		h.state = StateApplied
		h.mu.Unlock()
		return err
	}
	h.state = StateIdle
	if h.timer != nil {
		h.timer.Stop()
	}
	h.mu.Unlock()

	if h.onUndone != nil {
		h.onUndone()
	}
	return nil
}

// Dismiss drops the affordance without issuing the inverse mutation.
func (h *UndoHandle) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateApplied {
		return
	}
	h.state = StateIdle
	if h.timer != nil {
		h.timer.Stop()
	}
}
