package sessionerrors

import "errors"

// Session sentinel errors. Shared by the session, ws and api packages
// to avoid circular imports.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionFinished   = errors.New("session finished")
	ErrUnknownTheme      = errors.New("unknown theme")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidName       = errors.New("invalid player name")
	ErrNoActiveSession   = errors.New("no active session for this client")
)
