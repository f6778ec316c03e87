package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by stores and
// services to communicate domain-specific error conditions. Note that
// validation itself never fails with an error: bad submissions degrade to
// failed checks (see validator package).
// -----------------------------------------------------------------------------

// Challenge errors
var (
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeNotStarted = errors.New("challenge not started")
	ErrHintNotFound        = errors.New("hint not found")
	ErrSolutionNotFound    = errors.New("solution not available")
)

// Progress errors
var (
	ErrUnsupportedVersion = errors.New("unsupported progress version")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
