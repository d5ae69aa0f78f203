package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 01:00 UTC on June 1st is still May 31st in Sao Paulo
	now := time.Date(2026, 6, 1, 1, 0, 0, 0, time.UTC)

	p, err := parsePeriod("", "", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, loc), p.From)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, loc), p.To)

	p, err = parsePeriod("2026-05-10", "2026-05-10", now, loc)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, p.To.Sub(p.From))

	p, err = parsePeriod("2026-04-20", "", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, loc), p.To)

	_, err = parsePeriod("2025-01-01", "2026-05-01", now, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = parsePeriod("2026-05-10", "2026-05-09", now, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = parsePeriod("maio", "", now, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("", testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), day)

	day, err = parseDay("2026-12-25", testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 25, day.Day())

	_, err = parseDay("2026-13-01", testNow, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{3, 50, 3, 50},
		{-1, 1000, 1, 100},
	}
	for _, tt := range tests {
		page, size := normalizePage(tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantSize, size)
	}
}
