// Package calendar converts the lab's year/month/day triples into civil
// dates and computes a subject's age in months at a session.
package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// daysPerMonth is the divisor used to turn a day count into months.
const daysPerMonth = 31.0

// monthAbbrev maps three-letter month names to months.
var monthAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseMonth accepts a month number (1-12) or a three-letter English
// abbreviation in any case. Anything else wraps types.ErrUnknownMonth.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %q", types.ErrUnknownMonth, s)
		}
		return time.Month(n), nil
	}
	m, ok := monthAbbrev[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrUnknownMonth, s)
	}
	return m, nil
}

// Date returns UTC midnight of the given day. The day must exist in the
// month; time.Date's normalization of day 31 into the next month is
// rejected.
func Date(year int, month time.Month, day int) (time.Time, error) {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: no day %d in %s %d", types.ErrMalformedRecord, day, month, year)
	}
	return d, nil
}

// ParseDate builds a date from the string columns of a session record.
func ParseDate(year, month, day string) (time.Time, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", types.ErrMalformedRecord, year)
	}
	m, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, err
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", types.ErrMalformedRecord, day)
	}
	return Date(y, m, d)
}

// Birth is a date of birth. When YearOnly is set only Year is meaningful
// and the birth is taken as January 1st of that year.
type Birth struct {
	Year     int
	Month    time.Month
	Day      int
	YearOnly bool
}

// BirthYear returns a year-precision Birth.
func BirthYear(year int) Birth {
	return Birth{Year: year, Month: time.January, Day: 1, YearOnly: true}
}

// ParseBirthDate parses an M/D/YYYY date of birth. Month and day may be
// written with or without a leading zero.
func ParseBirthDate(s string) (Birth, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Birth{}, fmt.Errorf("%w: date of birth %q", types.ErrMalformedRecord, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Birth{}, fmt.Errorf("%w: date of birth %q", types.ErrMalformedRecord, s)
		}
		n[i] = v
	}
	month, day, year := n[0], n[1], n[2]
	if month < 1 || month > 12 {
		return Birth{}, fmt.Errorf("%w: date of birth %q", types.ErrMalformedRecord, s)
	}
	t, err := Date(year, time.Month(month), day)
	if err != nil {
		return Birth{}, fmt.Errorf("date of birth %q: %w", s, err)
	}
	return Birth{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Time returns the birth as a UTC date.
func (b Birth) Time() time.Time {
	if b.YearOnly {
		return time.Date(b.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
}

// AgeInMonths returns the subject's age at the session in whole months.
//
// With a full date of birth the age is the number of elapsed calendar
// months plus the leftover days divided by 31, rounded. With a birth year
// only, the age is the total day count divided by 31, rounded. A session
// before the birth yields 0.
func AgeInMonths(session time.Time, birth Birth) int {
	born := birth.Time()
	session = time.Date(session.Year(), session.Month(), session.Day(), 0, 0, 0, 0, time.UTC)
	if session.Before(born) {
		return 0
	}
	if birth.YearOnly {
		return roundMonths(daysBetween(born, session))
	}

	months := (session.Year()-born.Year())*12 + int(session.Month()-born.Month())
	anchor := anniversary(born, months)
	if anchor.After(session) {
		months--
		anchor = anniversary(born, months)
	}
	return months + roundMonths(daysBetween(anchor, session))
}

// anniversary returns the date months after born, clamping the day to the
// length of the target month.
func anniversary(born time.Time, months int) time.Time {
	first := time.Date(born.Year(), born.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := min(born.Day(), daysIn(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func roundMonths(days int) int {
	return int(math.Round(float64(days) / daysPerMonth))
}
