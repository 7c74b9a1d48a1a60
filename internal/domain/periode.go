package domain

import (
	"fmt"
	"time"
)

// Month abbreviations as the forms have always shown them. December is "DES",
// not "DEC".
var periodeMonths = []string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DES",
}

// PeriodeOptions returns every selectable reporting window: one label per
// quarter for the previous, current and next year, e.g. "JAN 25-MAR 25".
func PeriodeOptions(now time.Time) []string {
	currentYear := now.Year()
	years := []int{currentYear - 1, currentYear, currentYear + 1}

	options := make([]string, 0, len(years)*4)
	for _, year := range years {
		options = append(options, periodesForYear(year)...)
	}
	return options
}

// PeriodesForYear returns the four quarter labels of a single year.
func PeriodesForYear(year int) []string {
	return periodesForYear(year)
}

func periodesForYear(year int) []string {
	shortYear := year % 100
	labels := make([]string, 0, 4)
	for i := 0; i < 12; i += 3 {
		start := periodeMonths[i]
		end := periodeMonths[i+2]
		labels = append(labels, fmt.Sprintf("%s %02d-%s %02d", start, shortYear, end, shortYear))
	}
	return labels
}

// IsValidPeriode reports whether p is one of the generated quarter labels
// around now. The periode string doubles as the dedup key next to user_id, so
// free-form values are never accepted.
func IsValidPeriode(p string, now time.Time) bool {
	for _, opt := range PeriodeOptions(now) {
		if opt == p {
			return true
		}
	}
	return false
}

// Deadline is an upcoming submission cutoff shown on the dashboard calendar.
type Deadline struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// UpcomingDeadlines computes the next submission cutoffs: the last day of each
// quarter window of the current year, filtered to dates at or after now,
// capped at 3.
func UpcomingDeadlines(now time.Time) []Deadline {
	year := now.Year()
	labels := periodesForYear(year)

	deadlines := make([]Deadline, 0, 3)
	for q := 0; q < 4; q++ {
		endMonth := time.Month(q*3 + 3)
		// Day 0 of the following month is the last day of endMonth.
		end := time.Date(year, endMonth+1, 0, 23, 59, 59, 0, now.Location())
		if end.Before(now) {
			continue
		}
		deadlines = append(deadlines, Deadline{
			Date:  end,
			Label: "Laporan Periode " + labels[q],
		})
		if len(deadlines) == 3 {
			break
		}
	}
	return deadlines
}
