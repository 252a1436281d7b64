package relay

import (
	"sync"
	"time"
)

// Status is the explicit lifecycle state of a room. It is never inferred
// from which fields happen to be set.
type Status int

const (
	StatusAwaitingOpponent Status = iota
	StatusActive
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingOpponent:
		return "awaiting_opponent"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}

// Room is a two-player session identified by a short code. All mutation goes
// through the guarded methods below; the mutex also serializes the relay's
// validate-and-broadcast section so per-room delivery stays FIFO.
type Room struct {
	mu sync.Mutex

	Code      string
	PlayerOne string
	PlayerTwo string
	Winner    string
	CreatedAt time.Time

	status Status
}

func NewRoom(code, creator string) *Room {
	return &Room{
		Code:      code,
		PlayerOne: creator,
		CreatedAt: time.Now(),
		status:    StatusAwaitingOpponent,
	}
}

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Join claims the second participant slot. The check and the set happen under
// the room mutex, so of two concurrent joins exactly one wins and the other
// observes ErrRoomFull.
func (r *Room) Join(joiner string) (opponent string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusAwaitingOpponent {
		return "", ErrRoomFull
	}
	r.PlayerTwo = joiner
	r.status = StatusActive
	return r.PlayerOne, nil
}

// revertJoin undoes a slot claim whose persistence failed, so a later join
// can retry. Only valid right after a successful Join.
func (r *Room) revertJoin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PlayerTwo = ""
	r.status = StatusAwaitingOpponent
}

// Finish records the winner and moves the room to its terminal state.
// Repeated finishes overwrite the winner (last writer wins) and a finish is
// accepted even before an opponent joined; both match the reference behavior
// and are reported so callers can log them.
func (r *Room) Finish(winner string) (overwrote, singlePlayer bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	overwrote = r.Winner != ""
	singlePlayer = r.PlayerTwo == ""
	r.Winner = winner
	r.status = StatusFinished
	return overwrote, singlePlayer
}

// Participants returns both identities; the second is empty while the room
// awaits an opponent.
func (r *Room) Participants() (one, two string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.PlayerOne, r.PlayerTwo
}
