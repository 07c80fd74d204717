// Package main provides the eegsubmit CLI, which compiles the eeg_details
// and eeg_sub_files submission reports from the lab's session records.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: filesystem failures
// are system errors, everything else (bad config, bad records, missing
// subjects) is for the user to fix.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
		return exitSysError
	default:
		return exitUserError
	}
}
