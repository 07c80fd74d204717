// Package mapper projects enriched sessions onto the archive's two report
// schemas. The projections are static tables of field copies and
// constants; keep them declarative so the schema mapping stays auditable.
package mapper

import (
	"github.com/mesh-intelligence/eegsubmit/pkg/types"
)

// Field fills one report column, either from a session field or with a
// constant when Source is empty.
type Field struct {
	Dest   string
	Source string
	Const  string
}

// Mapping is the ordered field list of one report.
type Mapping struct {
	Name   string
	Fields []Field
}

func copyOf(dest, source string) Field  { return Field{Dest: dest, Source: source} }
func constant(dest, value string) Field { return Field{Dest: dest, Const: value} }

// Details is the eeg_details projection.
var Details = Mapping{
	Name: "eeg_details",
	Fields: []Field{
		copyOf("subjectkey", types.AttrSubjectKey),     // subject GUID
		copyOf("src_subject_id", types.ColSubject),     // lab subject id
		copyOf("interview_date", types.ColDate),        // MM/DD/YYYY
		copyOf("interview_age", types.AttrAgeInMonths), // months
		copyOf("gender", types.AttrGender),
		copyOf("site", "location"),                  // session location
		copyOf("visit", types.ColSession),           // session number
		constant("eeg001", "1"),                     // EEG collected
		copyOf("eeg003b", types.AttrHandThrow),      // throwing a ball (1-5)
		copyOf("eeg003d", types.AttrHandToothbrush), // brushing teeth (1-5)
		copyOf("eeg003e", types.AttrHandScissors),   // scissors (1-5)
		copyOf("eeg003g", types.AttrHandWrite),      // writing (1-5)
		copyOf("eeg008c", "sleep"),                  // hours of sleep
		copyOf("eeg008d", "alertness"),              // alertness (1-5)
		copyOf("eeg013", "start_time"),              // recording start
		copyOf("head_circum", types.AttrHeadCircum), // cm
		copyOf("eeg015", types.AttrCapSize),         // PM, PL, AS, AM, AML, AL, AXL
		copyOf("eeg022", "end_time"),                // recording end
		constant("eeg026", "0"),                     // task with faces
		constant("eeg027", "0"),                     // eyes-closed rest
		constant("eeg028", "0"),                     // flanker task
		constant("eeg029", "0"),                     // eyes-open rest
		constant("eeg_4", "1"),                      // normal or corrected vision
	},
}

// SubFiles is the eeg_sub_files projection.
var SubFiles = Mapping{
	Name: "eeg_sub_files",
	Fields: []Field{
		copyOf("subjectkey", types.AttrSubjectKey),
		copyOf("src_subject_id", types.ColSubject),
		copyOf("interview_date", types.ColDate),
		copyOf("interview_age", types.AttrAgeInMonths),
		copyOf("gender", types.AttrGender),
		copyOf("ofc", types.AttrHeadCircum),
		copyOf("experiment_id", types.ColExperimentID),
		copyOf("data_file1", "data_file1"),
		copyOf("data_file1_type", "data_file1_type"),
		copyOf("data_file2", "data_file2"),
		copyOf("data_file2_type", "data_file2_type"),
		copyOf("data_file3", "data_file3"),
		copyOf("data_file3_type", "data_file3_type"),
		copyOf("data_file4", "data_file4"),
		copyOf("data_file4_type", "data_file4_type"),
		copyOf("head_circum", types.AttrHeadCircum),
		copyOf("visit", types.ColSession),
	},
}

// Columns returns the destination columns in mapping order.
func (m Mapping) Columns() []string {
	cols := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		cols[i] = f.Dest
	}
	return cols
}

// Row projects one session.
func (m Mapping) Row(s *types.Session) types.Row {
	row := make(types.Row, len(m.Fields))
	for _, f := range m.Fields {
		if f.Source == "" {
			row[f.Dest] = f.Const
			continue
		}
		row[f.Dest] = s.Get(f.Source)
	}
	return row
}

// Table projects every session, in order.
func (m Mapping) Table(sessions []*types.Session) *types.Table {
	t := types.NewTable(m.Columns()...)
	for _, s := range sessions {
		t.Append(m.Row(s))
	}
	return t
}
