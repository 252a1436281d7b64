package relay

// Sender describes the connection a move arrived on: the connection id (used
// to exclude it from the broadcast), the identity the client supplied, and
// the room code the connection is currently subscribed to ("" if none).
type Sender struct {
	ConnID   string
	Identity string
	Joined   string
}

// Relay validates move envelopes against room state and forwards them to the
// other subscribers. It never interprets the move itself.
type Relay struct {
	registry *Registry
	bc       Broadcaster
}

func NewRelay(registry *Registry, bc Broadcaster) *Relay {
	return &Relay{registry: registry, bc: bc}
}

// HandleMove runs the ordered validation chain and, on success, broadcasts
// the move to every subscriber of the room except the sender. The first
// failing check wins and is reported to the sender only; nothing is
// broadcast on failure.
//
// The room mutex is held across validation and the broadcast enqueue, so
// receivers observe moves in the order they were accepted. Enqueueing never
// blocks on slow receivers; actual socket writes happen elsewhere.
func (rl *Relay) HandleMove(code string, from Sender, env MoveEnvelope) error {
	if from.Joined != code {
		return ErrRoomNotFound
	}
	room, ok := rl.registry.Get(code)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Winner != "" {
		return ErrGameFinished
	}
	if room.PlayerOne == "" || room.PlayerTwo == "" {
		return ErrRoomNotFull
	}
	if from.Identity != room.PlayerOne && from.Identity != room.PlayerTwo {
		return ErrInvalidUser
	}
	body := env.broadcastBody()
	if !env.Kind.Valid() || body == nil {
		return ErrInvalidMoveKind
	}

	rl.bc.BroadcastExcept(code, from.ConnID, string(env.Kind), body)
	return nil
}
