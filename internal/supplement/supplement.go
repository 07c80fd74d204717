// Package supplement merges the manually curated per-subject file (date of
// birth, head circumference, cap size, GUID) into the session list.
package supplement

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/internal/calendar"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// minFields is the number of tab-separated fields per line: id, date of
// birth (MM/DD/YYYY, or YYYY when only the year is known), head
// circumference, cap size, GUID.
const minFields = 5

// Entry is one subject's curated data.
type Entry struct {
	Subject    string
	Birth      calendar.Birth
	HeadCircum float64
	CapSize    string
	GUID       string
}

// Index maps subject ids to their curated entry.
type Index map[string]Entry

// Load reads the supplemental file. Blank lines are skipped. A line with too
// few fields or an unparsable date of birth or head circumference is an
// error naming the line.
func Load(path string) (Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening supplemental file: %w", err)
	}
	defer f.Close()

	idx := make(Index)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		e, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		idx[e.Subject] = e
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return idx, nil
}

func parseLine(text string) (Entry, error) {
	fields := strings.Split(text, "\t")
	if len(fields) < minFields {
		return Entry{}, fmt.Errorf("%w: want %d tab-separated fields, got %d", types.ErrMalformedRecord, minFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	birth, err := parseBirth(fields[1])
	if err != nil {
		return Entry{}, err
	}
	circ, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: head circumference %q", types.ErrMalformedRecord, fields[2])
	}
	return Entry{
		Subject:    fields[0],
		Birth:      birth,
		HeadCircum: circ,
		CapSize:    fields[3],
		GUID:       fields[4],
	}, nil
}

// parseBirth accepts MM/DD/YYYY or, when only the year is known, YYYY.
func parseBirth(s string) (calendar.Birth, error) {
	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil {
			return calendar.BirthYear(y), nil
		}
	}
	return calendar.ParseBirthDate(s)
}

// Lookup returns the subject's entry or an error wrapping
// types.ErrSubjectNotFound.
func (idx Index) Lookup(subject string) (Entry, error) {
	e, ok := idx[subject]
	if !ok {
		return Entry{}, fmt.Errorf("%w in supplemental file: %q", types.ErrSubjectNotFound, subject)
	}
	return e, nil
}

// Merge attaches age_in_months, head_circum, cap_size and subjectkey to
// every session. Every session's subject must have an entry; the first one
// missing aborts the merge.
func Merge(sessions []*types.Session, idx Index, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	for _, s := range sessions {
		e, err := idx.Lookup(s.Subject)
		if err != nil {
			return fmt.Errorf("session %s: %w", s.Key(), err)
		}
		s.Set(types.AttrAgeInMonths, strconv.Itoa(calendar.AgeInMonths(s.Date, e.Birth)))
		s.Set(types.AttrHeadCircum, strconv.FormatFloat(e.HeadCircum, 'f', -1, 64))
		s.Set(types.AttrCapSize, e.CapSize)
		s.Set(types.AttrSubjectKey, e.GUID)
	}
	log.Debug("merged supplemental data", zap.Int("sessions", len(sessions)), zap.Int("subjects", len(idx)))
	return nil
}
