//go:build unit

package reservation_test

import (
	"testing"

	"fieldserve/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to reservation.Status }{
		{reservation.StatusPending, reservation.StatusConfirmed},
		{reservation.StatusPending, reservation.StatusCancelled},
		{reservation.StatusPending, reservation.StatusNoShow},
		{reservation.StatusConfirmed, reservation.StatusInProgress},
		{reservation.StatusConfirmed, reservation.StatusCompleted},
		{reservation.StatusConfirmed, reservation.StatusCancelled},
		{reservation.StatusConfirmed, reservation.StatusNoShow},
		{reservation.StatusInProgress, reservation.StatusCompleted},
		{reservation.StatusInProgress, reservation.StatusNoShow},
	}

	for _, edge := range allowed {
		assert.True(t, reservation.CanTransition(edge.from, edge.to),
			"%s -> %s should be allowed", edge.from, edge.to)
	}

	denied := []struct{ from, to reservation.Status }{
		{reservation.StatusPending, reservation.StatusInProgress},
		{reservation.StatusPending, reservation.StatusCompleted},
		{reservation.StatusInProgress, reservation.StatusCancelled},
		{reservation.StatusCompleted, reservation.StatusPending},
		{reservation.StatusCancelled, reservation.StatusConfirmed},
		{reservation.StatusNoShow, reservation.StatusPending},
		{reservation.StatusConfirmed, reservation.StatusPending},
	}

	for _, edge := range denied {
		assert.False(t, reservation.CanTransition(edge.from, edge.to),
			"%s -> %s should be denied", edge.from, edge.to)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := []reservation.Status{
		reservation.StatusCompleted,
		reservation.StatusCancelled,
		reservation.StatusNoShow,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
		for _, to := range []reservation.Status{
			reservation.StatusPending,
			reservation.StatusConfirmed,
			reservation.StatusInProgress,
			reservation.StatusCompleted,
			reservation.StatusCancelled,
			reservation.StatusNoShow,
		} {
			assert.False(t, reservation.CanTransition(s, to),
				"terminal status %s must admit no edges", s)
		}
	}

	assert.False(t, reservation.StatusPending.IsTerminal())
	assert.False(t, reservation.StatusConfirmed.IsTerminal())
	assert.False(t, reservation.StatusInProgress.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := reservation.ParseStatus("CONFIRMED")
	assert.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, s)

	_, err = reservation.ParseStatus("confirmed")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)

	_, err = reservation.ParseStatus("")
	assert.ErrorIs(t, err, reservation.ErrInvalidStatus)
}
