// Package integration provides CLI integration tests for eegsubmit.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// eegsubmitBin is the path to the built eegsubmit binary.
	eegsubmitBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetBinary sets the path to the eegsubmit binary (called from TestMain).
func SetBinary(path string) {
	eegsubmitBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv is an isolated lab tree with its own config directory, record
// files, supplemental file and report templates.
type TestEnv struct {
	t          *testing.T
	TempDir    string
	Config     string
	LTPRoot    string
	Details    string
	SubFiles   string
	EEGFile    string
	SessionLog string
}

const (
	DetailsTemplate  = "eeg_details,1,,,,\nsubjectkey,src_subject_id,interview_date,interview_age,gender,eeg001\n"
	SubFilesTemplate = "eeg_sub_files,1,,,,\nsrc_subject_id,experiment_id,data_file1,data_file1_type,data_file2,data_file2_type\n"
)

// NewTestEnv creates a new isolated test environment holding one pyFR
// subject with two sessions, one of them inside the configured range.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build eegsubmit: %v", buildErr)
	}
	if eegsubmitBin == "" {
		t.Fatal("eegsubmit binary not built (eegsubmitBin is empty)")
	}

	tempDir := t.TempDir()
	e := &TestEnv{
		t:        t,
		TempDir:  tempDir,
		Config:   filepath.Join(tempDir, "config"),
		LTPRoot:  filepath.Join(tempDir, "ltp"),
		Details:  filepath.Join(tempDir, "nda", "eeg_details01.csv"),
		SubFiles: filepath.Join(tempDir, "nda", "eeg_sub_files01.csv"),
	}

	e.WriteFile(filepath.Join(e.LTPRoot, "pyFR", "cmldb_sess_info_pyFR.txt"),
		"subject\tsession\tyear\tmonth\tday\n"+
			"LTP001\t0\t2018\tJun\t10\n"+
			"LTP001\t1\t2016\tJan\t3\n")
	e.WriteFile(filepath.Join(e.LTPRoot, "pyFR", "cmldb_subj_info_pyFR.txt"), "subject\tgender\nLTP001\tM\n")
	e.EEGFile = e.WriteFile(filepath.Join(e.LTPRoot, "pyFR", "LTP001", "session_0", "eeg", "LTP001_session_0.bdf"), "eegdata")
	e.SessionLog = e.WriteFile(filepath.Join(e.LTPRoot, "pyFR", "LTP001", "session_0", "session.log"), "log")
	supplemental := e.WriteFile(filepath.Join(tempDir, "nda", "extra_info.txt"), "LTP001\t06/10/1998\t55.5\tM\tNDAR_INVAAA\n")
	e.WriteFile(e.Details, DetailsTemplate)
	e.WriteFile(e.SubFiles, SubFilesTemplate)

	e.WriteFile(filepath.Join(e.Config, "config.yaml"),
		"ltp_root: "+e.LTPRoot+"\n"+
			"protocols_root: "+filepath.Join(tempDir, "protocols")+"\n"+
			"questionnaire: "+filepath.Join(tempDir, "SubjectInfo", "subject_info.csv")+"\n"+
			"supplemental: "+supplemental+"\n"+
			"start_date: \"2018-01-01\"\n"+
			"end_date: \"2018-12-31\"\n"+
			"reports:\n"+
			"  details:\n    path: "+e.Details+"\n"+
			"  sub_files:\n    path: "+e.SubFiles+"\n")
	return e
}

// WriteFile writes content to path, creating parent directories, and
// returns path.
func (e *TestEnv) WriteFile(path, content string) string {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func (e *TestEnv) ReadFile(path string) string {
	e.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// CmdResult holds the result of an eegsubmit command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the eegsubmit CLI with the given arguments against the
// environment's config directory.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(eegsubmitBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run eegsubmit: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the eegsubmit CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("eegsubmit %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Summary mirrors the JSON printed by generate --json.
type Summary struct {
	RunID      string `json:"run_id"`
	Sessions   int    `json:"sessions"`
	Files      int    `json:"files"`
	TotalBytes int64  `json:"total_bytes"`
	Details    string `json:"details"`
	SubFiles   string `json:"sub_files"`
	DryRun     bool   `json:"dry_run"`
}

// Slot mirrors one entry printed by discover --json.
type Slot struct {
	Slot  int    `json:"slot"`
	Path  string `json:"path"`
	Label string `json:"label"`
}
