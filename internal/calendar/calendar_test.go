package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Month
		wantErr bool
	}{
		{in: "Jan", want: time.January},
		{in: "jun", want: time.June},
		{in: "DEC", want: time.December},
		{in: "6", want: time.June},
		{in: " 12 ", want: time.December},
		{in: "0", wantErr: true},
		{in: "13", wantErr: true},
		{in: "June", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonth(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, types.ErrUnknownMonth)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2018", "Jun", "10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, time.June, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2018", "Foo", "10")
	assert.ErrorIs(t, err, types.ErrUnknownMonth)

	_, err = ParseDate("2018", "Feb", "30")
	assert.ErrorIs(t, err, types.ErrMalformedRecord)

	_, err = ParseDate("x", "Feb", "3")
	assert.ErrorIs(t, err, types.ErrMalformedRecord)
}

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		in   string
		want Birth
	}{
		{"03/15/1995", Birth{Year: 1995, Month: time.March, Day: 15}},
		{"6/5/1990", Birth{Year: 1990, Month: time.June, Day: 5}},
		{"06/5/1990", Birth{Year: 1990, Month: time.June, Day: 5}},
		{" 12/31/2001 ", Birth{Year: 2001, Month: time.December, Day: 31}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := ParseBirthDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}

	for _, bad := range []string{"1995-03-15", "13/01/1995", "2/30/1995", "6/5", "a/5/1990", ""} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseBirthDate(bad)
			assert.ErrorIs(t, err, types.ErrMalformedRecord)
		})
	}
}

func TestAgeInMonths(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name    string
		session time.Time
		birth   Birth
		want    int
	}{
		{
			name:    "exact anniversary",
			session: day(2018, time.June, 10),
			birth:   Birth{Year: 1998, Month: time.June, Day: 10},
			want:    240,
		},
		{
			name:    "leftover days round down",
			session: day(2018, time.June, 20),
			birth:   Birth{Year: 1998, Month: time.June, Day: 10},
			want:    240,
		},
		{
			name:    "leftover days round up",
			session: day(2018, time.June, 30),
			birth:   Birth{Year: 1998, Month: time.June, Day: 10},
			want:    241,
		},
		{
			name:    "anniversary not yet reached this month",
			session: day(2018, time.June, 5),
			birth:   Birth{Year: 1998, Month: time.June, Day: 10},
			want:    240,
		},
		{
			name:    "birth on 31st clamps in february",
			session: day(2019, time.March, 1),
			birth:   Birth{Year: 2019, Month: time.January, Day: 31},
			want:    1,
		},
		{
			name:    "year only uses day count",
			session: day(2001, time.January, 1),
			birth:   BirthYear(2000),
			want:    12,
		},
		{
			name:    "session before birth clamps to zero",
			session: day(1990, time.January, 1),
			birth:   Birth{Year: 1998, Month: time.June, Day: 10},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeInMonths(tt.session, tt.birth))
		})
	}
}

func TestAgeInMonthsMonotonic(t *testing.T) {
	births := []Birth{
		{Year: 1996, Month: time.January, Day: 31},
		{Year: 1996, Month: time.February, Day: 29},
		{Year: 1997, Month: time.August, Day: 15},
		BirthYear(1995),
	}
	for _, b := range births {
		prev := 0
		d := time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
		for ; d.Before(end); d = d.AddDate(0, 0, 1) {
			got := AgeInMonths(d, b)
			require.GreaterOrEqual(t, got, 0)
			require.GreaterOrEqual(t, got, prev, "birth %+v, session %s", b, d.Format(time.DateOnly))
			prev = got
		}
	}
}
