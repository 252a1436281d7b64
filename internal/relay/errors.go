package relay

import "errors"

// Error messages double as the wire-level error payloads, so the exact
// phrasing matters to clients.
var (
	ErrInvalidRequest   = errors.New("Invalid data")
	ErrRoomNotFound     = errors.New("Room not found")
	ErrRoomFull         = errors.New("Room is full")
	ErrRoomNotFull      = errors.New("Room is not full")
	ErrInvalidUser      = errors.New("Invalid user")
	ErrGameFinished     = errors.New("Game is finished")
	ErrInvalidMoveKind  = errors.New("Invalid move type")
	ErrStoreUnavailable = errors.New("Operation failed")
)
