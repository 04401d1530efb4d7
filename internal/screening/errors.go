package screening

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is reported when a stage receives empty input text.
	ErrEmptyText = errors.New("input text is empty")
	// ErrNoCandidates is reported when the ranker has nothing to rank.
	ErrNoCandidates = errors.New("no candidates to rank")
)

// ExtractionError wraps an upstream failure to read a resume file. It is
// equivalent to empty input for the parser stage.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseError is reported when the parser or analyzer stage could not produce
// even a defaulted structured record. For resumes it is scoped to a single
// source and never aborts the batch; for the job description it is fatal.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is reported when a structured record violates one of the
// data model invariants.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RankingError is reported when no ordering can be produced.
type RankingError struct {
	Err error
}

func (e *RankingError) Error() string {
	return fmt.Sprintf("ranking: %v", e.Err)
}

func (e *RankingError) Unwrap() error { return e.Err }
