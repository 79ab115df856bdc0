package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/charter-booking/internal/schedule"
)

func TestExpireHoldsSweep(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepo(db)
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE bookings SET status='cancelled'").
		WithArgs(uint64(42), now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	swept, err := repo.ExpireHolds(context.Background(), 42, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotsForBoatDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepo(db)

	rows := sqlmock.NewRows([]string{"id", "status", "start", "end"}).
		AddRow(1, schedule.StatusConfirmed, "10:00", "12:00").
		AddRow(2, schedule.StatusPendingHold, "13:30", "15:00")
	mock.ExpectQuery("FROM bookings").
		WithArgs(uint64(42), uint64(7), "2025-06-01").
		WillReturnRows(rows)

	slots, err := repo.SlotsForBoatDate(context.Background(), 42, 7, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, schedule.Interval{Start: 600, End: 720}, slots[0].Interval)
	assert.Equal(t, schedule.Interval{Start: 810, End: 900}, slots[1].Interval)
	assert.True(t, slots[0].Blocks())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The transactional variant must take row locks: two concurrent booking
// attempts for the same slot serialize on the database.
func TestSlotsForBoatDateTxLocksRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings.*FOR UPDATE").
		WithArgs(uint64(42), uint64(7), "2025-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "start", "end"}))

	tx, err := db.Begin()
	require.NoError(t, err)
	slots, err := repo.SlotsForBoatDateTx(context.Background(), tx, 42, 7, "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireHoldsForBoatTxScopesToBoatAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepo(db)
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status='cancelled'").
		WithArgs(uint64(42), uint64(7), "2025-06-01", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.ExpireHoldsForBoatTx(context.Background(), tx, 42, 7, "2025-06-01", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}
