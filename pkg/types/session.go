package types

import (
	"fmt"
	"strings"
	"time"
)

// SessionDateLayout is the MM/DD/YYYY form the archive expects for
// interview_date.
const SessionDateLayout = "01/02/2006"

// Column names with a fixed meaning in session tables.
const (
	ColExperiment   = "experiment"
	ColExperimentID = "experiment_id"
	ColSubject      = "subject"
	ColSession      = "session"
	ColYear         = "year"
	ColMonth        = "month"
	ColDay          = "day"
	ColDate         = "date"
)

// Joined attribute names added by the merge stages.
const (
	AttrGender         = "gender"
	AttrHandThrow      = "hand_throw"
	AttrHandToothbrush = "hand_toothbrush"
	AttrHandScissors   = "hand_scissors"
	AttrHandWrite      = "hand_write"
	AttrHeadCircum     = "head_circum"
	AttrCapSize        = "cap_size"
	AttrSubjectKey     = "subjectkey"
	AttrAgeInMonths    = "age_in_months"
)

// Session is one recording session of one subject in one experiment.
// Experiment, Subject and Number together identify it. Every column of the
// source record beyond the identifying ones lives in Attrs, and the merge
// stages add their attributes there too.
type Session struct {
	Experiment   string            `json:"experiment"`
	ExperimentID string            `json:"experiment_id"`
	Subject      string            `json:"subject"`
	Number       string            `json:"session"`
	Date         time.Time         `json:"date"`
	Attrs        map[string]string `json:"attrs"`
	Files        FileAssociation   `json:"files"`
}

// Key returns the identifying (experiment, subject, session) triple joined
// with slashes.
func (s *Session) Key() string {
	return s.Experiment + "/" + s.Subject + "/" + s.Number
}

// Get returns the value of a named field. Identifying columns, the derived
// date and the data_fileN / data_fileN_type slots are resolved from the
// typed fields; everything else comes from Attrs. Unknown names yield "".
func (s *Session) Get(name string) string {
	switch name {
	case ColExperiment:
		return s.Experiment
	case ColExperimentID:
		return s.ExperimentID
	case ColSubject:
		return s.Subject
	case ColSession:
		return s.Number
	case ColDate:
		if s.Date.IsZero() {
			return ""
		}
		return s.Date.Format(SessionDateLayout)
	}
	if i, label, ok := parseDataFileField(name); ok {
		if label {
			return s.Files.Label(i)
		}
		return s.Files.Path(i)
	}
	return s.Attrs[name]
}

// Set stores an attribute value.
func (s *Session) Set(name, value string) {
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[name] = value
}

// DataFileField returns the column name of pair i (0-based) of the file
// association, e.g. data_file1 or data_file1_type.
func DataFileField(i int, label bool) string {
	if label {
		return fmt.Sprintf("data_file%d_type", i+1)
	}
	return fmt.Sprintf("data_file%d", i+1)
}

func parseDataFileField(name string) (int, bool, bool) {
	rest, ok := strings.CutPrefix(name, "data_file")
	if !ok || rest == "" {
		return 0, false, false
	}
	label := false
	if r, ok := strings.CutSuffix(rest, "_type"); ok {
		rest, label = r, true
	}
	if len(rest) != 1 || rest[0] < '1' || rest[0] > '0'+FileSlots {
		return 0, false, false
	}
	return int(rest[0] - '1'), label, true
}

// Subject holds the sparse attributes known about one subject id.
type Subject struct {
	ID     string
	Fields map[string]string
}

// Merge copies every non-empty value in fields into s. Fields the source lacks
// are left untouched.
func (s *Subject) Merge(fields map[string]string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		s.Fields[k] = v
	}
}
