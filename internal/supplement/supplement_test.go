package supplement

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/eegsubmit/internal/calendar"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

func writeSupplemental(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extra_info.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSupplemental(t, "S01\t03/15/1995\t56.5\tAM\tNDAR_INV001\n\nS02\t12/01/1990\t58\tAL\tNDAR_INV002\r\n")

	idx, err := Load(path)
	require.NoError(t, err)
	require.Len(t, idx, 2)

	assert.Equal(t, Entry{
		Subject:    "S01",
		Birth:      calendar.Birth{Year: 1995, Month: time.March, Day: 15},
		HeadCircum: 56.5,
		CapSize:    "AM",
		GUID:       "NDAR_INV001",
	}, idx["S01"])
	assert.Equal(t, "NDAR_INV002", idx["S02"].GUID)
}

func TestLoadUnpaddedBirthDate(t *testing.T) {
	idx, err := Load(writeSupplemental(t, "S01\t6/5/1990\t56\tAM\tNDAR1\n"))
	require.NoError(t, err)
	require.Contains(t, idx, "S01")
	assert.Equal(t, calendar.Birth{Year: 1990, Month: time.June, Day: 5}, idx["S01"].Birth)
}

func TestLoadYearOnlyBirth(t *testing.T) {
	idx, err := Load(writeSupplemental(t, "S03\t1998\t55\tAS\tNDAR_INV003\n"))
	require.NoError(t, err)
	assert.Equal(t, calendar.BirthYear(1998), idx["S03"].Birth)

	s := &types.Session{Experiment: "pyFR", Subject: "S03", Number: "0", Date: time.Date(2018, time.June, 10, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, Merge([]*types.Session{s}, idx, nil))
	// 7465 days / 31
	assert.Equal(t, "241", s.Get(types.AttrAgeInMonths))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "too few fields", content: "S01\t03/15/1995\t56.5\tAM\n"},
		{name: "bad date of birth", content: "S01\t1995-03-15\t56.5\tAM\tG\n"},
		{name: "bad year", content: "S01\t19x5\t56.5\tAM\tG\n"},
		{name: "bad head circumference", content: "S01\t03/15/1995\tbig\tAM\tG\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSupplemental(t, tt.content))
			require.ErrorIs(t, err, types.ErrMalformedRecord)
			assert.Contains(t, err.Error(), ":1:")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMerge(t *testing.T) {
	idx := Index{
		"S01": {Subject: "S01", Birth: calendar.Birth{Year: 1998, Month: time.June, Day: 10}, HeadCircum: 56, CapSize: "PXL", GUID: "NDAR_INV001"},
	}
	s := &types.Session{Experiment: "pyFR", Subject: "S01", Number: "1", Date: time.Date(2018, time.June, 10, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, Merge([]*types.Session{s}, idx, nil))
	assert.Equal(t, "240", s.Get(types.AttrAgeInMonths))
	assert.Equal(t, "56", s.Get(types.AttrHeadCircum))
	assert.Equal(t, "PXL", s.Get(types.AttrCapSize), "cap size passes through unvalidated")
	assert.Equal(t, "NDAR_INV001", s.Get(types.AttrSubjectKey))
}

func TestMergeMissingSubjectIsFatal(t *testing.T) {
	idx := Index{"S01": {Subject: "S01", Birth: calendar.Birth{Year: 1998, Month: time.June, Day: 10}}}
	sessions := []*types.Session{
		{Experiment: "pyFR", Subject: "S01", Number: "1", Date: time.Date(2018, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{Experiment: "pyFR", Subject: "S99", Number: "1", Date: time.Date(2018, time.June, 11, 0, 0, 0, 0, time.UTC)},
	}
	err := Merge(sessions, idx, nil)
	require.ErrorIs(t, err, types.ErrSubjectNotFound)
	assert.Contains(t, err.Error(), "S99")
}
