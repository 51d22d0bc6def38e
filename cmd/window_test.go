package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindowDefaultsToCurrentUTCDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC)

	w, err := resolveWindow("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC), w.End)
}

func TestResolveWindowDefaultsFollowNowsDay(t *testing.T) {
	// A non-UTC now still resolves to the UTC day.
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2024, 6, 16, 3, 0, 0, 0, loc) // 2024-06-15T18:00Z

	w, err := resolveWindow("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestResolveWindowParsesNaiveDatesAsUTC(t *testing.T) {
	w, err := resolveWindow("2024-01-01", "2024-06-30", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), w.End)

	w, err = resolveWindow("2024-01-01T08:30:00", "2024-01-02 09:00:00", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindowConvertsOffsetsToUTC(t *testing.T) {
	w, err := resolveWindow("2024-01-01T08:00:00+02:00", "2024-01-01T20:00:00Z", time.Now())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), w.End)
}

func TestResolveWindowRejectsMalformedInput(t *testing.T) {
	_, err := resolveWindow("not-a-date", "", time.Now())
	require.ErrorIs(t, err, ErrMalformedWindow)

	_, err = resolveWindow("", "2024-13-45", time.Now())
	require.ErrorIs(t, err, ErrMalformedWindow)
}

func TestResolveWindowRejectsReversedBounds(t *testing.T) {
	_, err := resolveWindow("2024-06-30", "2024-01-01", time.Now())
	require.ErrorIs(t, err, ErrMalformedWindow)
}

func TestFakerTimeStaysWithinWindow(t *testing.T) {
	f := NewFaker(5)
	w, err := resolveWindow("2024-01-01", "2024-06-30T23:59:59", time.Now())
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		ts := f.Time(w.Start, w.End)
		require.False(t, ts.Before(w.Start), "sampled %s before window start", ts)
		require.False(t, ts.After(w.End), "sampled %s after window end", ts)
		require.Zero(t, ts.Nanosecond())
	}
}

func TestFakerTimeDegenerateWindow(t *testing.T) {
	f := NewFaker(5)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, f.Time(at, at))
}
