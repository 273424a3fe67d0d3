package workflow

import "errors"

var (
	// ErrValidation covers malformed or missing workflow input, such as a
	// rejection without a reason.
	ErrValidation = errors.New("validation error")

	// ErrInvalidTransition is returned when the requested status change is
	// not a legal move in the application state machine.
	ErrInvalidTransition = errors.New("invalid application status transition")

	// ErrNoPlotAvailable is returned when an approval cannot bind a plot.
	ErrNoPlotAvailable = errors.New("no plot available for assignment")

	// ErrForbidden is returned when the acting user's role does not permit
	// the transition (revoking an approval is manager-only).
	ErrForbidden = errors.New("forbidden")
)
