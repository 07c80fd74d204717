package types

import (
	"errors"
	"time"
)

// DateLayout is the layout used for start_date and end_date in config.yaml.
const DateLayout = "2006-01-02"

// Config holds everything a generation run needs. It is assembled from
// config.yaml by the CLI and passed by value to the pipeline.
type Config struct {
	LTPRoot       string `json:"ltp_root" yaml:"ltp_root"`
	ProtocolsRoot string `json:"protocols_root" yaml:"protocols_root"`
	Questionnaire string `json:"questionnaire" yaml:"questionnaire"`
	Supplemental  string `json:"supplemental" yaml:"supplemental"`

	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`

	Details  ReportConfig `json:"details" yaml:"details"`
	SubFiles ReportConfig `json:"sub_files" yaml:"sub_files"`

	// Families maps experiment names to discovery families. Experiments
	// absent from the map have no discovery rules.
	Families map[string]Family `json:"families" yaml:"families"`
}

// ReportConfig locates one output report. Template names the file whose
// first two lines supply the report header; empty means Path itself.
type ReportConfig struct {
	Path     string `json:"path" yaml:"path"`
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
}

// TemplatePath returns the file the header template is read from.
func (r ReportConfig) TemplatePath() string {
	if r.Template != "" {
		return r.Template
	}
	return r.Path
}

// Config validation errors.
var (
	ErrLTPRootEmpty      = errors.New("ltp_root must not be empty")
	ErrSupplementalEmpty = errors.New("supplemental must not be empty")
	ErrReportPathEmpty   = errors.New("report path must not be empty")
	ErrInvalidDateRange  = errors.New("start_date must not be after end_date")
	ErrDateMissing       = errors.New("start_date and end_date are required")
	ErrFamilyUnknown     = errors.New("unknown discovery family")
)

// Validate checks that the Config is complete enough to run. It returns a
// sentinel error from this package on failure.
func (c Config) Validate() error {
	if c.LTPRoot == "" {
		return ErrLTPRootEmpty
	}
	if c.Supplemental == "" {
		return ErrSupplementalEmpty
	}
	if c.Details.Path == "" || c.SubFiles.Path == "" {
		return ErrReportPathEmpty
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return ErrDateMissing
	}
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidDateRange
	}
	for _, f := range c.Families {
		if !f.Valid() {
			return ErrFamilyUnknown
		}
	}
	return nil
}

// InRange reports whether d falls inside the inclusive [StartDate, EndDate]
// range.
func (c Config) InRange(d time.Time) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}
