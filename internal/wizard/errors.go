package wizard

import "errors"

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("wizard: aborted")

// SubmissionError wraps a failed submission in non-interactive runs.
type SubmissionError struct {
	Cause error
}

func (e *SubmissionError) Error() string {
	return SubmissionErrorPrefix + e.Cause.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
