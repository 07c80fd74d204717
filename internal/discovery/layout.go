package discovery

import "path/filepath"

// File and directory names of the on-disk layouts.
const (
	sessionDirPrefix = "session_"
	eegSubdir        = "eeg"
	eventsMAT        = "events.mat"
	sessionLog       = "session.log"
	sessionJSONL     = "session.jsonl"
	syncPulseLog     = "eeg.eeglog"
	allEventsJSON    = "all_events.json"
	currentProcessed = "current_processed"
)

// Raw EEG file patterns.
const (
	bdfPattern    = "*.bdf"
	bdfBZ2Pattern = "*.bdf.bz2"
	mffPattern    = "*.mff"
	jsonPattern   = "*.json"
)

// Layout holds the two roots discovery searches: the raw-data root with one
// directory per experiment, and the processed-data store.
type Layout struct {
	LTPRoot       string
	ProtocolsRoot string
}

// Target is one session to discover files for, with its directories
// resolved.
type Target struct {
	Experiment string
	Subject    string
	Session    string

	// SessionDir is <ltp>/<experiment>/<subject>/session_<n>.
	SessionDir string
	// ProcessedDir is <protocols>/subjects/<subject>/experiments/<experiment>/sessions/<n>.
	ProcessedDir string
	// ExperimentDir is <ltp>/<experiment>.
	ExperimentDir string
}

// Target resolves the directories of one session.
func (l Layout) Target(experiment, subject, session string) Target {
	return Target{
		Experiment:    experiment,
		Subject:       subject,
		Session:       session,
		SessionDir:    filepath.Join(l.LTPRoot, experiment, subject, sessionDirPrefix+session),
		ProcessedDir:  filepath.Join(l.ProtocolsRoot, "subjects", subject, "experiments", experiment, "sessions", session),
		ExperimentDir: filepath.Join(l.LTPRoot, experiment),
	}
}

func (t Target) processedEEG() string {
	return filepath.Join(t.ProcessedDir, "ephys", currentProcessed)
}

func (t Target) processedEvents() string {
	return filepath.Join(t.ProcessedDir, "behavioral", currentProcessed, allEventsJSON)
}

func (t Target) behavioralData() string {
	return filepath.Join(t.ExperimentDir, "behavioral", "data", "beh_data__"+t.Subject+".json")
}
