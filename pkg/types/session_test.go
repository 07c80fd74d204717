package types

import (
	"testing"
	"time"
)

func TestFileAssociationPairs(t *testing.T) {
	var a FileAssociation
	if !a.IsEmpty() {
		t.Fatal("zero association is not empty")
	}

	a.Set(0, "/s/eeg/a.bdf", LabelEEG)
	a.Set(1, "", LabelSessionLog)
	a.Set(3, "/s/eeg/b.bdf", LabelEEG)

	if a.IsEmpty() {
		t.Fatal("association with paths reports empty")
	}
	if got := a.Label(1); got != "" {
		t.Errorf("label without path = %q, want empty", got)
	}
	want := []string{"/s/eeg/a.bdf", "/s/eeg/b.bdf"}
	got := a.Paths()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	for i := 0; i < FileSlots; i++ {
		if (a.Path(i) == "") != (a.Label(i) == "") {
			t.Errorf("pair %d is half filled: %q %q", i, a.Path(i), a.Label(i))
		}
	}

	a.Set(0, "", LabelEEG)
	if a.Label(0) != "" {
		t.Error("clearing a path leaves its label")
	}
}

func TestSessionGet(t *testing.T) {
	s := &Session{
		Experiment:   "pyFR",
		ExperimentID: "596",
		Subject:      "LTP001",
		Number:       "2",
		Date:         time.Date(2018, time.June, 10, 0, 0, 0, 0, time.UTC),
	}
	s.Set(AttrGender, "F")
	s.Files.Set(0, "/s/eeg/a.bdf", LabelEEG)
	s.Files.Set(1, "/s/session.log", LabelSessionLog)

	tests := []struct {
		name string
		want string
	}{
		{ColExperiment, "pyFR"},
		{ColExperimentID, "596"},
		{ColSubject, "LTP001"},
		{ColSession, "2"},
		{ColDate, "06/10/2018"},
		{AttrGender, "F"},
		{"data_file1", "/s/eeg/a.bdf"},
		{"data_file2_type", LabelSessionLog},
		{"data_file4", ""},
		{"data_file5", ""},
		{"data_file", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Get(tt.name); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
	if got := s.Key(); got != "pyFR/LTP001/2" {
		t.Errorf("Key() = %q", got)
	}
	if got := (&Session{}).Get(ColDate); got != "" {
		t.Errorf("zero date renders as %q", got)
	}
}

func TestDataFileField(t *testing.T) {
	if got := DataFileField(0, false); got != "data_file1" {
		t.Errorf("DataFileField(0, false) = %q", got)
	}
	if got := DataFileField(3, true); got != "data_file4_type" {
		t.Errorf("DataFileField(3, true) = %q", got)
	}
}

func TestSubjectMerge(t *testing.T) {
	s := &Subject{ID: "LTP001"}
	s.Merge(map[string]string{AttrGender: "F", AttrHandWrite: "5"})
	s.Merge(map[string]string{AttrGender: "", AttrHandWrite: "4"})

	if s.Fields[AttrGender] != "F" {
		t.Errorf("empty value overwrote gender: %q", s.Fields[AttrGender])
	}
	if s.Fields[AttrHandWrite] != "4" {
		t.Errorf("later source did not win: %q", s.Fields[AttrHandWrite])
	}
}

func TestTable(t *testing.T) {
	tbl := NewTable("a", "b")
	tbl.AddColumn("b")
	tbl.AddColumn("c")
	if len(tbl.Columns) != 3 || !tbl.HasColumn("c") || tbl.HasColumn("d") {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	tbl.Append(Row{"a": "1", "c": "3"})
	got := tbl.Rows[0].Values(tbl.Columns)
	if got[0] != "1" || got[1] != "" || got[2] != "3" {
		t.Errorf("Values() = %v", got)
	}
}
