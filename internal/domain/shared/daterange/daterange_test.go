package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightsBetweenRoundsUp(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 6, NightsBetween(start, start.AddDate(0, 0, 6)))
	assert.Equal(t, 1, NightsBetween(start, start.Add(time.Hour)))
	assert.Equal(t, 0, NightsBetween(start, start))
	assert.Equal(t, -2, NightsBetween(start, start.AddDate(0, 0, -2)))
}

func TestParseAcceptsDateInputs(t *testing.T) {
	dr, err := Parse("2025-06-01", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, 9, dr.Nights())

	dr, err = Parse("2025-06-01T12:00:00Z", "2025-06-02T18:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 2, dr.Nights())
}

func TestParseRejectsInvertedAndMalformed(t *testing.T) {
	_, err := Parse("2025-06-10", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Parse("2025-06-10", "2025-06-10")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Parse("", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Parse("06/01/2025", "2025-06-02")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
