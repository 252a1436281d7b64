package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"koridor-relay/internal/relay"
)

// Hub owns the per-room subscriber sets and dispatches the wire events
// (create, join, move, finish) to the coordinator. It implements
// relay.Broadcaster.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*session

	registry *relay.Registry
	relay    *relay.Relay
	upgrader websocket.Upgrader
}

func NewHub(registry *relay.Registry, allowedOrigins []string) *Hub {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return &Hub{
		rooms:    make(map[string]map[string]*session),
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// SetRelay breaks the hub/relay construction cycle: the relay broadcasts
// through the hub, the hub dispatches moves to the relay.
func (h *Hub) SetRelay(rl *relay.Relay) {
	h.relay = rl
}

// HandleWS upgrades the request and serves the connection until it drops.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	s := newSession(conn)
	log.Debug().Str("session", s.id).Msg("connection established")
	go s.writePump()
	h.readLoop(s)
}

func (h *Hub) readLoop(s *session) {
	defer func() {
		code, empty := h.unsubscribe(s)
		s.shutdown()
		if code != "" && empty {
			h.registry.ReleaseIfIdle(code)
		}
		log.Debug().Str("session", s.id).Str("identity", s.identity).Msg("connection closed")
	}()

	for {
		var msg clientEnvelope
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(s, msg)
	}
}

func (h *Hub) dispatch(s *session, msg clientEnvelope) {
	switch msg.Event {
	case "create":
		h.handleCreate(s, msg.Data)
	case "join":
		h.handleJoin(s, msg.Data)
	case "move":
		h.handleMove(s, msg.Data)
	case "finish":
		h.handleFinish(s, msg.Data)
	default:
		s.enqueue("error", gin.H{"message": relay.ErrInvalidRequest.Error()})
	}
}

func (h *Hub) handleCreate(s *session, data json.RawMessage) {
	var req createRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Username == "" || h.roomOf(s) != "" {
		s.enqueue("error", gin.H{"message": relay.ErrInvalidRequest.Error()})
		return
	}
	room, err := h.registry.CreateRoom(context.Background(), req.Username)
	if err != nil {
		s.enqueue("error", gin.H{"message": err.Error()})
		return
	}
	s.identity = req.Username
	h.subscribe(room.Code, s)
	s.enqueue("room", gin.H{"roomId": room.Code})
	log.Info().Str("room", room.Code).Str("creator", req.Username).Msg("room created")
}

func (h *Hub) handleJoin(s *session, data json.RawMessage) {
	var req joinRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Username == "" || req.Room == "" || h.roomOf(s) != "" {
		s.enqueue("error", gin.H{"message": relay.ErrInvalidRequest.Error()})
		return
	}
	opponent, err := h.registry.JoinRoom(context.Background(), req.Room, req.Username)
	if err != nil {
		s.enqueue("error", gin.H{"message": err.Error()})
		return
	}
	s.identity = req.Username
	h.subscribe(req.Room, s)

	// Each side learns the other's name: the joiner gets the creator,
	// everyone already in the room gets the joiner.
	s.enqueue("start", gin.H{"opponent": opponent})
	h.BroadcastExcept(req.Room, s.id, "start", gin.H{"opponent": req.Username})
	log.Info().Str("room", req.Room).Str("joiner", req.Username).Msg("room active")
}

func (h *Hub) handleMove(s *session, data json.RawMessage) {
	var req moveRequest
	if err := json.Unmarshal(data, &req); err != nil ||
		req.Username == "" || req.Room == "" || req.Move.Type == "" || req.Counter == nil {
		s.enqueue("error", gin.H{"message": relay.ErrInvalidRequest.Error()})
		return
	}
	env, err := decodeMove(req.Move, *req.Counter)
	if err != nil {
		s.enqueue("error", gin.H{"message": err.Error()})
		return
	}
	from := relay.Sender{ConnID: s.id, Identity: req.Username, Joined: h.roomOf(s)}
	if err := h.relay.HandleMove(req.Room, from, env); err != nil {
		s.enqueue("error", gin.H{"message": err.Error()})
	}
}

func (h *Hub) handleFinish(s *session, data json.RawMessage) {
	var req finishRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Username == "" || req.Room == "" || req.Winner == "" {
		s.enqueue("error", gin.H{"message": relay.ErrInvalidRequest.Error()})
		return
	}
	if err := h.registry.FinishRoom(context.Background(), req.Room, req.Username, req.Winner); err != nil {
		s.enqueue("error", gin.H{"message": err.Error()})
		return
	}
	// The finisher leaves first, then the rest of the room is told. A finish
	// naming some other room must not touch this connection's subscription.
	if h.roomOf(s) == req.Room {
		h.unsubscribe(s)
	}
	h.Broadcast(req.Room, "message", gin.H{"message": req.Username + " has left the room."})
	if h.roomEmpty(req.Room) {
		h.registry.ReleaseIfIdle(req.Room)
	}
	log.Info().Str("room", req.Room).Str("winner", req.Winner).Msg("room finished")
}

// RoomSwept releases every session still attached to a room the janitor
// dropped: their subscriptions are cleared so they can create or join again,
// and each gets a notice. Registered with the registry as its sweep notifier.
func (h *Hub) RoomSwept(code string) {
	h.mu.Lock()
	subs := h.rooms[code]
	delete(h.rooms, code)
	for _, sub := range subs {
		sub.room = ""
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.enqueue("message", gin.H{"message": "Room expired."})
	}
}

// roomOf reads the session's subscription under the hub lock; the janitor
// may clear it concurrently with the connection's read loop.
func (h *Hub) roomOf(s *session) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return s.room
}

func (h *Hub) roomEmpty(code string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code]) == 0
}

func (h *Hub) subscribe(code string, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[string]*session)
	}
	h.rooms[code][s.id] = s
	s.room = code
}

// unsubscribe removes the session from its room's broadcast set and reports
// whether the room is now empty.
func (h *Hub) unsubscribe(s *session) (code string, empty bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	code = s.room
	if code == "" {
		return "", false
	}
	s.room = ""
	subs, ok := h.rooms[code]
	if !ok {
		return code, true
	}
	delete(subs, s.id)
	if len(subs) == 0 {
		delete(h.rooms, code)
		return code, true
	}
	return code, false
}

// Broadcast sends the event to every subscriber of the room.
func (h *Hub) Broadcast(roomCode, event string, data any) {
	h.BroadcastExcept(roomCode, "", event, data)
}

// BroadcastExcept sends the event to every subscriber except exceptID.
// Enqueueing is non-blocking, so a slow receiver never stalls the caller.
func (h *Hub) BroadcastExcept(roomCode, exceptID, event string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, sub := range h.rooms[roomCode] {
		if id == exceptID {
			continue
		}
		sub.enqueue(event, data)
	}
}
