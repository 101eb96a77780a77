package pantryclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoHandleSpendsItself(t *testing.T) {
	inverted := 0
	undone := 0
	handle := newUndoHandle(time.Minute, func(context.Context) error {
		inverted++
		return nil
	}, func() { undone++ })

	assert.Equal(t, StateApplied, handle.State())

	require.NoError(t, handle.Undo(context.Background()))
	assert.Equal(t, StateIdle, handle.State())
	assert.Equal(t, 1, inverted)
	assert.Equal(t, 1, undone)

	// The affordance is single use.
	assert.ErrorIs(t, handle.Undo(context.Background()), ErrUndoUnavailable)
	assert.Equal(t, 1, inverted)
}

func TestUndoHandleFailedInverseStaysApplied(t *testing.T) {
	bang := errors.New("store unavailable")
	calls := 0
	handle := newUndoHandle(time.Minute, func(context.Context) error {
		calls++
		if calls == 1 {
			return bang
		}
		return nil
	}, nil)

	// A failed inverse leaves the affordance usable for a retry.
	assert.ErrorIs(t, handle.Undo(context.Background()), bang)
	assert.Equal(t, StateApplied, handle.State())

	require.NoError(t, handle.Undo(context.Background()))
	assert.Equal(t, StateIdle, handle.State())
}

func TestUndoHandleDismiss(t *testing.T) {
	handle := newUndoHandle(time.Minute, func(context.Context) error {
		t.Fatal("inverse must not run after dismissal")
		return nil
	}, nil)

	handle.Dismiss()
	handle.Dismiss()

	assert.Equal(t, StateIdle, handle.State())
	assert.ErrorIs(t, handle.Undo(context.Background()), ErrUndoUnavailable)
}

func TestUndoHandleSurvivesImmediateExpiry(t *testing.T) {
	// A window this small fires the expiry callback while the constructor
	// is still returning; the handle must come out dismissed, not panic.
	handles := make([]*UndoHandle, 0, 64)
	for i := 0; i < 64; i++ {
		handles = append(handles, newUndoHandle(time.Nanosecond, func(context.Context) error {
			return nil
		}, nil))
	}

	for _, handle := range handles {
		assert.Eventually(t, func() bool {
			return handle.State() == StateIdle
		}, time.Second, time.Millisecond)
		assert.ErrorIs(t, handle.Undo(context.Background()), ErrUndoUnavailable)
	}
}

func TestUndoHandleTimesOut(t *testing.T) {
	handle := newUndoHandle(10*time.Millisecond, func(context.Context) error {
		t.Error("inverse must not run after the window lapses")
		return nil
	}, nil)

	assert.Eventually(t, func() bool {
		return handle.State() == StateIdle
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, handle.Undo(context.Background()), ErrUndoUnavailable)
}
