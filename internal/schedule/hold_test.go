package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldDeadline(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, created.Add(15*time.Minute), HoldDeadline(created))
}

// A booking with hold_until = now+15m must stay pending_hold before that
// instant and read as cancelled once evaluated after it.
func TestHoldExpiry(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	deadline := HoldDeadline(created)

	before := deadline.Add(-time.Second)
	assert.False(t, HoldExpired(StatusPendingHold, &deadline, before))
	assert.Equal(t, StatusPendingHold, EffectiveStatus(StatusPendingHold, &deadline, before))

	// The deadline itself counts as expired (hold_until <= now).
	assert.True(t, HoldExpired(StatusPendingHold, &deadline, deadline))
	assert.Equal(t, StatusCancelled, EffectiveStatus(StatusPendingHold, &deadline, deadline))

	after := deadline.Add(time.Hour)
	assert.True(t, HoldExpired(StatusPendingHold, &deadline, after))
	assert.Equal(t, StatusCancelled, EffectiveStatus(StatusPendingHold, &deadline, after))
}

func TestHoldExpiryIgnoresOtherStates(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	for _, s := range []string{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.False(t, HoldExpired(s, &past, now), s)
		assert.Equal(t, s, EffectiveStatus(s, &past, now), s)
	}
	// pending_hold with a nil deadline violates the data invariant; treat it
	// as non-expiring rather than cancelling someone's booking.
	assert.False(t, HoldExpired(StatusPendingHold, nil, now))
}

func TestStatusHelpers(t *testing.T) {
	for _, s := range []string{StatusPendingHold, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus(""))

	assert.False(t, Terminal(StatusPendingHold))
	assert.False(t, Terminal(StatusConfirmed))
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCancelled))
	assert.True(t, Terminal(StatusNoShow))
}
