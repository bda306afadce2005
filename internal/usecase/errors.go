package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflicting update")
	ErrCompetitionVoided     = errors.New("competition is voided")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
