package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodeOptions(t *testing.T) {
	now := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	options := PeriodeOptions(now)

	assert.Len(t, options, 12)
	assert.Equal(t, "JAN 24-MAR 24", options[0])
	assert.Equal(t, "JAN 25-MAR 25", options[4])
	assert.Equal(t, "OCT 26-DES 26", options[11])

	// December keeps its historical spelling.
	for _, o := range options {
		assert.NotContains(t, o, "DEC")
	}
}

func TestPeriodeOptionsPadsShortYears(t *testing.T) {
	now := time.Date(2008, time.May, 10, 0, 0, 0, 0, time.UTC)
	options := PeriodeOptions(now)
	assert.Equal(t, "JAN 07-MAR 07", options[0])
	assert.Equal(t, "JAN 08-MAR 08", options[4])
}

func TestIsValidPeriode(t *testing.T) {
	now := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsValidPeriode("JAN 25-MAR 25", now))
	assert.True(t, IsValidPeriode("OCT 24-DES 24", now))
	assert.True(t, IsValidPeriode("APR 26-JUN 26", now))

	assert.False(t, IsValidPeriode("JAN 22-MAR 22", now)) // too old
	assert.False(t, IsValidPeriode("JAN 27-MAR 27", now)) // too far ahead
	assert.False(t, IsValidPeriode("jan 25-mar 25", now)) // case sensitive
	assert.False(t, IsValidPeriode("", now))
	assert.False(t, IsValidPeriode("'; DROP TABLE reports_ga;--", now))
}

func TestUpcomingDeadlinesQuarterEnds(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	deadlines := UpcomingDeadlines(now)

	assert.Len(t, deadlines, 3)
	assert.Equal(t, 31, deadlines[0].Date.Day())
	assert.Equal(t, time.March, deadlines[0].Date.Month())
	assert.Equal(t, 30, deadlines[1].Date.Day())
	assert.Equal(t, time.June, deadlines[1].Date.Month())
	assert.Equal(t, 30, deadlines[2].Date.Day())
	assert.Equal(t, time.September, deadlines[2].Date.Month())
}

func TestUpcomingDeadlinesIncludesToday(t *testing.T) {
	// The quarter-end day itself still counts until end of day.
	now := time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC)
	deadlines := UpcomingDeadlines(now)
	assert.Equal(t, time.March, deadlines[0].Date.Month())
}
