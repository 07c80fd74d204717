// Package records loads the lab's per-experiment session and subject
// record files, keeps the sessions inside a date range and joins each
// session with its subject's attributes.
package records

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// DefaultQuestionnairePath is the questionnaire location relative to the
// record root.
const DefaultQuestionnairePath = "SubjectInfo/subject_info.csv"

// Loader reads session and subject records under Root.
type Loader struct {
	Root          string
	Questionnaire string // empty means Root/SubjectInfo/subject_info.csv
	Start, End    time.Time
	Log           *zap.Logger
}

// NewLoader returns a Loader for the configured root and date range.
func NewLoader(cfg types.Config, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		Root:          cfg.LTPRoot,
		Questionnaire: cfg.Questionnaire,
		Start:         cfg.StartDate,
		End:           cfg.EndDate,
		Log:           log,
	}
}

// Load returns every in-range session across all experiments with gender
// and handedness attached. A session whose subject has no subject record
// fails the load with types.ErrSubjectNotFound.
func (l *Loader) Load() ([]*types.Session, error) {
	table, err := l.LoadSessionTable()
	if err != nil {
		return nil, err
	}
	sessions, err := ToSessions(table, l.Log)
	if err != nil {
		return nil, err
	}

	sources, err := l.Sources()
	if err != nil {
		return nil, err
	}
	idx, err := BuildSubjectIndex(sources, l.Log)
	if err != nil {
		return nil, err
	}
	if err := JoinSubjects(sessions, idx); err != nil {
		return nil, err
	}
	l.Log.Info("loaded sessions", zap.Int("sessions", len(sessions)), zap.Int("subjects", len(idx)))
	return sessions, nil
}

// LoadSessionTable reads every session record file, filters by date and
// unions the per-experiment tables. Experiments without in-range sessions
// contribute nothing, not even columns.
func (l *Loader) LoadSessionTable() (*types.Table, error) {
	files, err := FindRecordFiles(l.Root, SessionFilePrefix)
	if err != nil {
		return nil, err
	}
	var tables []*types.Table
	for _, f := range files {
		t, err := LoadExperimentSessions(f, l.Start, l.End, l.Log)
		if err != nil {
			return nil, fmt.Errorf("loading sessions of %s: %w", f.Experiment, err)
		}
		if len(t.Rows) == 0 {
			continue
		}
		tables = append(tables, t)
	}
	return Union(tables...), nil
}

// Sources returns the subject sources in merge order: the lab's subject
// record files first, the questionnaire last.
func (l *Loader) Sources() ([]Source, error) {
	files, err := FindRecordFiles(l.Root, SubjectFilePrefix)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(files)+1)
	for _, f := range files {
		sources = append(sources, CMLDBSource{Path: f.Path, Fields: CMLDBFields})
	}
	q := l.Questionnaire
	if q == "" {
		q = filepath.Join(l.Root, DefaultQuestionnairePath)
	}
	sources = append(sources, QuestionnaireSource{Path: q, Fields: QuestionnaireFields, Log: l.Log})
	return sources, nil
}

// JoinSubjects copies each session's subject attributes onto the session.
// Fields the subject lacks are set empty.
func JoinSubjects(sessions []*types.Session, idx SubjectIndex) error {
	for _, s := range sessions {
		subj, err := idx.Lookup(s.Subject)
		if err != nil {
			return fmt.Errorf("session %s: %w", s.Key(), err)
		}
		for _, f := range CMLDBFields {
			s.Set(f, subj.Fields[f])
		}
		for _, f := range QuestionnaireFields {
			s.Set(f, subj.Fields[f])
		}
	}
	return nil
}
