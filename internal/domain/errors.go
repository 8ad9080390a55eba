package domain

import "errors"

// Domain errors
var (
	// Session errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Gateway errors
	ErrNetwork = errors.New("network error")

	// Timer errors
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrNoWorkers         = errors.New("at least one worker is required")
)
