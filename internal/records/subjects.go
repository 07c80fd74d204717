package records

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Subject fields read from each source.
var (
	CMLDBFields         = []string{types.AttrGender}
	QuestionnaireFields = []string{types.AttrHandThrow, types.AttrHandToothbrush, types.AttrHandScissors, types.AttrHandWrite}
)

// questionnaireIDColumn holds the semicolon-joined subject aliases of a
// questionnaire row.
const questionnaireIDColumn = "snum"

// SubjectRecord is one source row: the subject ids it applies to and the
// fields it provides.
type SubjectRecord struct {
	IDs    []string
	Fields map[string]string
}

// Source supplies subject attributes. Sources are applied in order by
// BuildSubjectIndex and later sources win.
type Source interface {
	Name() string
	Load() ([]SubjectRecord, error)
	// EnrichOnly reports whether the source may only add fields to
	// subjects an earlier source introduced.
	EnrichOnly() bool
}

// SubjectIndex maps subject ids to their merged attributes.
type SubjectIndex map[string]*types.Subject

// Lookup returns the subject or an error wrapping types.ErrSubjectNotFound.
func (idx SubjectIndex) Lookup(id string) (*types.Subject, error) {
	s, ok := idx[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrSubjectNotFound, id)
	}
	return s, nil
}

// BuildSubjectIndex applies sources in order into one index. For a field
// present in several sources the value from the last source wins; a field a
// source leaves empty keeps its earlier value.
func BuildSubjectIndex(sources []Source, log *zap.Logger) (SubjectIndex, error) {
	idx := make(SubjectIndex)
	for _, src := range sources {
		recs, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("loading subjects from %s: %w", src.Name(), err)
		}
		applied := 0
		for _, rec := range recs {
			for _, id := range rec.IDs {
				s, ok := idx[id]
				if !ok {
					if src.EnrichOnly() {
						continue
					}
					s = &types.Subject{ID: id, Fields: make(map[string]string)}
					idx[id] = s
				}
				s.Merge(rec.Fields)
				applied++
			}
		}
		log.Debug("merged subject source", zap.String("source", src.Name()), zap.Int("records", len(recs)), zap.Int("applied", applied))
	}
	return idx, nil
}

// CMLDBSource reads one cmldb_subj_info_<experiment>.txt file.
type CMLDBSource struct {
	Path   string
	Fields []string
}

func (s CMLDBSource) Name() string     { return s.Path }
func (s CMLDBSource) EnrichOnly() bool { return false }

// Load returns one record per row, keyed by the subject column.
func (s CMLDBSource) Load() ([]SubjectRecord, error) {
	t, err := readTable(s.Path, tabDelimiter)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t, s.Path, types.ColSubject); err != nil {
		return nil, err
	}
	recs := make([]SubjectRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := row[types.ColSubject]
		if id == "" {
			continue
		}
		recs = append(recs, SubjectRecord{IDs: []string{id}, Fields: pick(row, s.Fields)})
	}
	return recs, nil
}

// QuestionnaireSource reads the participant questionnaire export. A row
// applies to every alias in its snum column. The questionnaire only
// enriches subjects known from the lab records, and a missing file is
// skipped with a warning.
type QuestionnaireSource struct {
	Path   string
	Fields []string
	Log    *zap.Logger
}

func (s QuestionnaireSource) Name() string     { return s.Path }
func (s QuestionnaireSource) EnrichOnly() bool { return true }

// Load returns one record per questionnaire row.
func (s QuestionnaireSource) Load() ([]SubjectRecord, error) {
	t, err := readTable(s.Path, commaDelimiter)
	if errors.Is(err, fs.ErrNotExist) {
		if s.Log != nil {
			s.Log.Warn("questionnaire not found, handedness left empty", zap.String("path", s.Path))
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := requireColumns(t, s.Path, questionnaireIDColumn); err != nil {
		return nil, err
	}
	recs := make([]SubjectRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		var ids []string
		for _, alias := range strings.Split(row[questionnaireIDColumn], ";") {
			if alias = strings.TrimSpace(alias); alias != "" {
				ids = append(ids, alias)
			}
		}
		if len(ids) == 0 {
			continue
		}
		recs = append(recs, SubjectRecord{IDs: ids, Fields: pick(row, s.Fields)})
	}
	return recs, nil
}

func pick(row types.Row, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = row[f]
	}
	return out
}
