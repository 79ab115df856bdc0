package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"14:00:00", 840, true}, // MySQL TIME scan format
		{" 10:15 ", 615, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if !c.ok {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:05", "13:30", "23:59"} {
		m, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(m))
	}
}

func TestOverlapsClosedOpen(t *testing.T) {
	a := Interval{Start: 600, End: 720} // 10:00-12:00
	cases := []struct {
		name string
		b    Interval
		want bool
	}{
		{"identical", Interval{600, 720}, true},
		{"contained", Interval{630, 690}, true},
		{"contains", Interval{540, 780}, true},
		{"left overlap", Interval{540, 660}, true},
		{"right overlap", Interval{660, 780}, true},
		{"back to back before", Interval{480, 600}, false},
		{"back to back after", Interval{720, 840}, false},
		{"disjoint", Interval{840, 900}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(a)) // symmetry
		})
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("09:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{540, 780}, iv)
	assert.InDelta(t, 4.0, iv.Duration(), 1e-9)

	_, err = ParseInterval("13:00", "09:00")
	assert.Error(t, err, "end before start")
	_, err = ParseInterval("10:00", "10:00")
	assert.Error(t, err, "empty interval")
}

// Any slot intersecting two overlapping non-cancelled bookings must read as
// unavailable.
func TestFirstConflict(t *testing.T) {
	existing := []BookingSlot{
		{ID: 1, Status: StatusConfirmed, Interval: Interval{600, 720}},
		{ID: 2, Status: StatusPendingHold, Interval: Interval{660, 780}},
		{ID: 3, Status: StatusCancelled, Interval: Interval{480, 900}},
		{ID: 4, Status: StatusNoShow, Interval: Interval{480, 900}},
	}

	_, hit := FirstConflict(Interval{650, 700}, existing, 0)
	assert.True(t, hit, "slot intersecting both live bookings")

	hitSlot, hit := FirstConflict(Interval{700, 760}, existing, 1)
	assert.True(t, hit)
	assert.Equal(t, uint64(2), hitSlot.ID, "exclusion skips only the excluded id")

	_, hit = FirstConflict(Interval{480, 600}, existing, 0)
	assert.False(t, hit, "cancelled and no_show rows never block")

	_, hit = FirstConflict(Interval{600, 720}, existing, 0)
	assert.True(t, hit)
	_, hit = FirstConflict(Interval{600, 720}, []BookingSlot{existing[0]}, 1)
	assert.False(t, hit, "rescheduling over itself is allowed")
}

func TestFirstBlackout(t *testing.T) {
	boat := uint64(7)
	other := uint64(8)
	spans := []BlockedSpan{
		{ID: 10, BoatID: &other, Interval: Interval{0, 1440}},
		{ID: 11, BoatID: &boat, Interval: Interval{540, 600}},
		{ID: 12, BoatID: nil, Interval: Interval{1200, 1320}}, // fleet-wide
	}

	_, hit := FirstBlackout(Interval{540, 660}, boat, spans)
	assert.True(t, hit, "boat-specific blackout")

	_, hit = FirstBlackout(Interval{600, 700}, boat, spans)
	assert.False(t, hit, "closed-open: blackout ends exactly at start")

	_, hit = FirstBlackout(Interval{1250, 1300}, boat, spans)
	assert.True(t, hit, "fleet-wide blackout applies to every boat")

	_, hit = FirstBlackout(Interval{60, 120}, boat, spans)
	assert.False(t, hit, "other boat's blackout does not apply")
}

func TestAvailable(t *testing.T) {
	boat := uint64(1)
	existing := []BookingSlot{{ID: 5, Status: StatusConfirmed, Interval: Interval{600, 720}}}
	spans := []BlockedSpan{{ID: 9, BoatID: nil, Interval: Interval{840, 960}}}

	assert.True(t, Available(Interval{720, 840}, boat, existing, spans, 0))
	assert.False(t, Available(Interval{700, 760}, boat, existing, spans, 0), "booking conflict")
	// Blocked even with no booking conflict: the reschedule target hits a
	// blackout, which the handler reports as 409.
	assert.False(t, Available(Interval{900, 1000}, boat, existing, spans, 5), "blackout conflict")
	assert.True(t, Available(Interval{600, 720}, boat, existing, spans, 5), "self-exclusion")
}
