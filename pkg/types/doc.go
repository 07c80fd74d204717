// Package types defines the session, subject, file-association and table
// types shared by every stage of the eegsubmit pipeline, together with the
// run configuration and the standard error values.
package types
