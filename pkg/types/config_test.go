package types

import (
	"errors"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		LTPRoot:      "/data/eeg/scalp/ltp",
		Supplemental: "/nda/extra_info.txt",
		StartDate:    time.Date(2018, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2019, time.January, 15, 0, 0, 0, 0, time.UTC),
		Details:      ReportConfig{Path: "/nda/eeg_details01.csv"},
		SubFiles:     ReportConfig{Path: "/nda/eeg_sub_files01.csv"},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "complete config is valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "empty ltp root returns ErrLTPRootEmpty",
			mutate:  func(c *Config) { c.LTPRoot = "" },
			wantErr: ErrLTPRootEmpty,
		},
		{
			name:    "empty supplemental returns ErrSupplementalEmpty",
			mutate:  func(c *Config) { c.Supplemental = "" },
			wantErr: ErrSupplementalEmpty,
		},
		{
			name:    "missing sub files path returns ErrReportPathEmpty",
			mutate:  func(c *Config) { c.SubFiles.Path = "" },
			wantErr: ErrReportPathEmpty,
		},
		{
			name:    "missing start date returns ErrDateMissing",
			mutate:  func(c *Config) { c.StartDate = time.Time{} },
			wantErr: ErrDateMissing,
		},
		{
			name:    "reversed range returns ErrInvalidDateRange",
			mutate:  func(c *Config) { c.StartDate, c.EndDate = c.EndDate, c.StartDate },
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "single day range is valid",
			mutate:  func(c *Config) { c.EndDate = c.StartDate },
			wantErr: nil,
		},
		{
			name:    "unknown family returns ErrFamilyUnknown",
			mutate:  func(c *Config) { c.Families = map[string]Family{"pyFR": "E"} },
			wantErr: ErrFamilyUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigInRange(t *testing.T) {
	cfg := validConfig()
	tests := []struct {
		date time.Time
		want bool
	}{
		{cfg.StartDate, true},
		{cfg.EndDate, true},
		{cfg.StartDate.AddDate(0, 0, -1), false},
		{cfg.EndDate.AddDate(0, 0, 1), false},
		{time.Date(2018, time.October, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		if got := cfg.InRange(tt.date); got != tt.want {
			t.Errorf("InRange(%s) = %v, want %v", tt.date.Format(DateLayout), got, tt.want)
		}
	}
}

func TestReportTemplatePath(t *testing.T) {
	r := ReportConfig{Path: "out.csv"}
	if got := r.TemplatePath(); got != "out.csv" {
		t.Errorf("TemplatePath() = %q, want out.csv", got)
	}
	r.Template = "blank.csv"
	if got := r.TemplatePath(); got != "blank.csv" {
		t.Errorf("TemplatePath() = %q, want blank.csv", got)
	}
}

func TestFamilies(t *testing.T) {
	for exp, f := range DefaultFamilies() {
		if !f.Valid() {
			t.Errorf("default family of %s is invalid: %q", exp, f)
		}
		if _, ok := ExperimentID(exp); !ok {
			t.Errorf("%s has a family but no experiment id", exp)
		}
	}
	if Family("").Valid() || Family("a").Valid() {
		t.Error("only upper-case family letters are valid")
	}
	if id, ok := ExperimentID("VFFR"); !ok || id != 1183 {
		t.Errorf("ExperimentID(VFFR) = %d, %v", id, ok)
	}
	if _, ok := ExperimentID("XYZ"); ok {
		t.Error("unknown experiment has an id")
	}
}
