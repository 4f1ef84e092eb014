package booking

import "errors"

var (
	// ErrSessionNotFound covers both unknown and expired sessions.
	ErrSessionNotFound = errors.New("booking session not found or expired")

	// ErrNoServices blocks advancing past service selection with nothing picked.
	ErrNoServices = errors.New("no services selected")

	// ErrNoSlotSelected blocks confirmation before a slot is chosen.
	ErrNoSlotSelected = errors.New("no slot selected")

	// ErrPastSelection rejects a date/time before now. Client-side sanity
	// check only; never sent upstream.
	ErrPastSelection = errors.New("selected time is in the past")

	// ErrConfirmInFlight rejects a second confirm while one is running.
	ErrConfirmInFlight = errors.New("confirmation already in progress")

	// ErrWrongState signals an operation fired outside its flow step.
	ErrWrongState = errors.New("operation not valid in current session state")
)

// SubmissionError is the single generic failure signal for the
// create-appointment call. Error subtypes (network, validation, conflict)
// are deliberately not distinguished.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "failed to book, please try again"
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
