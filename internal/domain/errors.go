package domain

import "errors"

// Sentinel errors shared by services and repositories. Wrap with fmt.Errorf("...: %w", err)
// and match with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidID  = errors.New("invalid id")
	ErrValidation = errors.New("validation failed")

	// Slot and schedule rules.
	ErrInvalidRange        = errors.New("start time must be before end time")
	ErrMissingSelection    = errors.New("doctor and date must be selected")
	ErrOverlap             = errors.New("time slot overlaps with an existing one")
	ErrBookedSlotImmutable = errors.New("cannot delete a booked slot")
	ErrDuplicateSchedule   = errors.New("schedule already exists for this doctor and date")
	ErrUnknownDoctor       = errors.New("doctor does not exist")

	// ErrUpstreamPersistence marks a failed write to durable storage.
	ErrUpstreamPersistence = errors.New("failed to persist schedule")

	ErrDuplicateEmail = errors.New("doctor with this email already exists")
)

// ValidationError carries the individual rule violations of a request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	msg := e.Problems[0]
	for _, p := range e.Problems[1:] {
		msg += "; " + p
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns nil when problems is empty.
func NewValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
