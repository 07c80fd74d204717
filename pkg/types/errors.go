package types

import "errors"

// Keyed-lookup failures. These abort a run.
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrUnknownMonth    = errors.New("unknown month")
)

// Input format errors.
var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrMalformedRecord = errors.New("malformed record")
	ErrTemplateInvalid = errors.New("invalid report template")
)
