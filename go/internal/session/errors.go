package session

import "errors"

var (
	// ErrNotInitialized is returned when an operation requires an
	// initialized session.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrInvalidConfig is returned when Initialize rejects settings
	// before any state is created.
	ErrInvalidConfig = errors.New("invalid draft configuration")

	// ErrPlayerNotAvailable is returned when a pick names a player that
	// is not in the available pool. The session is left unchanged.
	ErrPlayerNotAvailable = errors.New("player not in available pool")

	// ErrInvalidTeamIndex is returned when a pick names a team outside
	// the configured range.
	ErrInvalidTeamIndex = errors.New("team index out of range")

	// ErrSessionComplete is returned when an operation would advance a
	// session past its final pick.
	ErrSessionComplete = errors.New("draft is complete")
)
