package relay

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Registry is the single source of truth for room lifecycle. It owns the
// code-to-room map; per-room mutation is serialized by each Room's own mutex
// so rooms never contend with each other.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	store   Store
	codes   *CodeGenerator
	onSweep func(code string)
}

func NewRegistry(store Store, codes *CodeGenerator) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		store: store,
		codes: codes,
	}
}

// CreateRoom allocates a unique code, registers the room in AwaitingOpponent
// state and persists it. If the store refuses the initial save the room is
// unregistered again, so the registry never holds a room the store has no
// record of.
func (g *Registry) CreateRoom(ctx context.Context, creator string) (*Room, error) {
	if creator == "" {
		return nil, ErrInvalidRequest
	}

	var room *Room
	g.mu.Lock()
	for {
		code := g.codes.Generate()
		if _, taken := g.rooms[code]; taken {
			continue
		}
		room = NewRoom(code, creator)
		g.rooms[code] = room
		break
	}
	g.mu.Unlock()

	if err := g.store.SaveRoom(ctx, NewRecord(room)); err != nil {
		log.Error().Err(err).Str("room", room.Code).Msg("persisting new room failed")
		g.Remove(room.Code)
		return nil, ErrStoreUnavailable
	}
	return room, nil
}

// JoinRoom claims the second slot and activates the room, returning the
// creator's identity. The slot claim is atomic; when persisting the update
// fails the claim is released so the room stays joinable.
func (g *Registry) JoinRoom(ctx context.Context, code, joiner string) (opponent string, err error) {
	if joiner == "" || code == "" {
		return "", ErrInvalidRequest
	}
	room, ok := g.Get(code)
	if !ok {
		return "", ErrRoomNotFound
	}
	opponent, err = room.Join(joiner)
	if err != nil {
		return "", err
	}
	if err := g.store.UpdateRoomField(ctx, code, FieldPlayerTwo, joiner); err != nil {
		log.Error().Err(err).Str("room", code).Msg("persisting join failed")
		room.revertJoin()
		return "", ErrStoreUnavailable
	}
	return opponent, nil
}

// FinishRoom records the winner. The write is persisted before the in-memory
// transition so a store failure leaves the room untouched. Overwriting a
// winner and finishing a half-empty room are both allowed (reference
// behavior) but logged, since neither looks intended.
func (g *Registry) FinishRoom(ctx context.Context, code, finisher, winner string) error {
	if code == "" || finisher == "" || winner == "" {
		return ErrInvalidRequest
	}
	room, ok := g.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	if err := g.store.UpdateRoomField(ctx, code, FieldWinner, winner); err != nil {
		log.Error().Err(err).Str("room", code).Msg("persisting finish failed")
		return ErrStoreUnavailable
	}
	overwrote, singlePlayer := room.Finish(winner)
	if overwrote {
		log.Warn().Str("room", code).Str("winner", winner).Msg("winner overwritten by repeated finish")
	}
	if singlePlayer {
		log.Warn().Str("room", code).Msg("room finished before an opponent joined")
	}
	return nil
}

func (g *Registry) Get(code string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[code]
	return r, ok
}

func (g *Registry) Remove(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, code)
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// ReleaseIfIdle drops a finished room once its last subscriber departed. The
// persisted record stays in the store.
func (g *Registry) ReleaseIfIdle(code string) {
	room, ok := g.Get(code)
	if !ok || room.Status() != StatusFinished {
		return
	}
	g.Remove(code)
	log.Debug().Str("room", code).Msg("released finished room")
}

// SetSweepNotifier registers a callback invoked with each room code the
// janitor drops, so the transport layer can release subscribers that are
// still attached to a swept room.
func (g *Registry) SetSweepNotifier(fn func(code string)) {
	g.onSweep = fn
}

// SweepIdle removes rooms stuck in AwaitingOpponent for longer than maxAge
// and returns how many were dropped. The sweep notifier runs after the
// registry lock is released.
func (g *Registry) SweepIdle(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	var swept []string
	g.mu.Lock()
	for code, room := range g.rooms {
		if room.Status() == StatusAwaitingOpponent && room.CreatedAt.Before(cutoff) {
			delete(g.rooms, code)
			swept = append(swept, code)
		}
	}
	g.mu.Unlock()

	if g.onSweep != nil {
		for _, code := range swept {
			g.onSweep(code)
		}
	}
	return len(swept)
}

// Janitor periodically sweeps abandoned AwaitingOpponent rooms until ctx is
// cancelled.
func (g *Registry) Janitor(ctx context.Context, interval, maxAge time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := g.SweepIdle(maxAge); n > 0 {
				log.Info().Int("rooms", n).Msg("swept abandoned rooms")
			}
		}
	}
}
