package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Conn is the subset of websocket connection capabilities the hub uses.
// *websocket.Conn satisfies it; tests supply fakes.
type Conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

const sendBuffer = 32

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// session is one connected participant's logical channel. identity is only
// touched from the connection's read loop; room is guarded by the hub mutex,
// since the janitor can clear it from outside the read loop. Outgoing
// messages go through the buffered send channel so broadcasters never block
// on the socket.
type session struct {
	id       string
	identity string
	room     string

	conn Conn
	send chan outbound
	done chan struct{}
	once sync.Once
}

func newSession(conn Conn) *session {
	return &session{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan outbound, sendBuffer),
		done: make(chan struct{}),
	}
}

func (s *session) shutdown() {
	s.once.Do(func() { close(s.done) })
}

// enqueue hands a message to the writer pump without blocking. A receiver
// that can't keep up gets dropped rather than stalling the room.
func (s *session) enqueue(event string, data any) {
	select {
	case <-s.done:
	case s.send <- outbound{Event: event, Data: data}:
	default:
		log.Warn().Str("session", s.id).Str("event", event).Msg("send buffer full, dropping connection")
		s.shutdown()
	}
}

func (s *session) writePump() {
	defer s.conn.Close()
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("session", s.id).Msg("write failed")
				s.shutdown()
				return
			}
		}
	}
}
