package records

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/internal/calendar"
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Record file naming: <root>/<experiment>/<prefix><experiment>.txt.
const (
	SessionFilePrefix = "cmldb_sess_info_"
	SubjectFilePrefix = "cmldb_subj_info_"
	recordFileExt     = ".txt"
)

// ExperimentFile is one per-experiment record file found under the root.
type ExperimentFile struct {
	Experiment string
	Path       string
}

// FindRecordFiles globs <root>/*/<prefix>*.txt and returns the matches in
// path order, tagged with the experiment name taken from the file name.
func FindRecordFiles(root, prefix string) ([]ExperimentFile, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*", prefix+"*"+recordFileExt))
	if err != nil {
		return nil, fmt.Errorf("globbing %s records: %w", prefix, err)
	}
	sort.Strings(matches)
	files := make([]ExperimentFile, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), prefix), recordFileExt)
		files = append(files, ExperimentFile{Experiment: name, Path: m})
	}
	return files, nil
}

// LoadExperimentSessions reads one session record file and keeps the rows
// whose date lies in [start, end]. Retained rows gain the experiment,
// experiment_id and date columns. The returned table has no rows when
// nothing matched.
func LoadExperimentSessions(f ExperimentFile, start, end time.Time, log *zap.Logger) (*types.Table, error) {
	t, err := readTable(f.Path, tabDelimiter)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t, f.Path, types.ColSubject, types.ColSession, types.ColYear, types.ColMonth, types.ColDay); err != nil {
		return nil, err
	}

	expID := ""
	if id, ok := types.ExperimentID(f.Experiment); ok {
		expID = strconv.Itoa(id)
	} else {
		log.Warn("experiment has no archive id", zap.String("experiment", f.Experiment))
	}

	out := types.NewTable(t.Columns...)
	out.AddColumn(types.ColDate)
	out.AddColumn(types.ColExperiment)
	out.AddColumn(types.ColExperimentID)
	for i, row := range t.Rows {
		date, err := calendar.ParseDate(row[types.ColYear], row[types.ColMonth], row[types.ColDay])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", f.Path, i+2, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		row[types.ColMonth] = strconv.Itoa(int(date.Month()))
		row[types.ColDate] = date.Format(types.SessionDateLayout)
		row[types.ColExperiment] = f.Experiment
		row[types.ColExperimentID] = expID
		out.Append(row)
	}
	log.Debug("loaded session records",
		zap.String("experiment", f.Experiment),
		zap.Int("rows", len(t.Rows)),
		zap.Int("in_range", len(out.Rows)))
	return out, nil
}

// Union concatenates tables by column name. The result's columns are every
// input column in order of first appearance; a row lacking a column has a
// null cell there.
func Union(tables ...*types.Table) *types.Table {
	out := types.NewTable()
	for _, t := range tables {
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// ToSessions converts a unioned session table into Session values. Rows
// repeating an (experiment, subject, session) key already seen are dropped
// with a warning.
func ToSessions(t *types.Table, log *zap.Logger) ([]*types.Session, error) {
	seen := make(map[string]bool, len(t.Rows))
	sessions := make([]*types.Session, 0, len(t.Rows))
	for _, row := range t.Rows {
		date, err := time.Parse(types.SessionDateLayout, row[types.ColDate])
		if err != nil {
			return nil, fmt.Errorf("%w: session date %q", types.ErrMalformedRecord, row[types.ColDate])
		}
		s := &types.Session{
			Experiment:   row[types.ColExperiment],
			ExperimentID: row[types.ColExperimentID],
			Subject:      row[types.ColSubject],
			Number:       row[types.ColSession],
			Date:         date,
			Attrs:        make(map[string]string, len(row)),
		}
		if seen[s.Key()] {
			log.Warn("duplicate session record dropped", zap.String("session", s.Key()))
			continue
		}
		seen[s.Key()] = true
		for k, v := range row {
			switch k {
			case types.ColExperiment, types.ColExperimentID, types.ColSubject, types.ColSession, types.ColDate:
				continue
			}
			s.Attrs[k] = v
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
