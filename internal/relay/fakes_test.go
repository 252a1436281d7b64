package relay

import (
	"context"
	"errors"
	"sync"
)

// fakeStore records gateway calls and can be told to fail, standing in for
// the document store.
type fakeStore struct {
	mu         sync.Mutex
	saved      map[string]Record
	failSave   bool
	failUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]Record{}}
}

func (f *fakeStore) SaveRoom(_ context.Context, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("store down")
	}
	f.saved[rec.Code] = rec
	return nil
}

func (f *fakeStore) UpdateRoomField(_ context.Context, code, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("store down")
	}
	rec, ok := f.saved[code]
	if !ok {
		return ErrRoomNotFound
	}
	s := value.(string)
	switch field {
	case FieldPlayerTwo:
		rec.PlayerTwo = &s
	case FieldWinner:
		rec.Winner = &s
	}
	f.saved[code] = rec
	return nil
}

func (f *fakeStore) FindRoomByCode(_ context.Context, code string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.saved[code]
	if !ok {
		return Record{}, ErrRoomNotFound
	}
	return rec, nil
}

type broadcastCall struct {
	room   string
	except string
	event  string
	data   map[string]any
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *recordingBroadcaster) Broadcast(roomCode, event string, data any) {
	b.BroadcastExcept(roomCode, "", event, data)
}

func (b *recordingBroadcaster) BroadcastExcept(roomCode, exceptID, event string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	body, _ := data.(map[string]any)
	b.calls = append(b.calls, broadcastCall{room: roomCode, except: exceptID, event: event, data: body})
}

func (b *recordingBroadcaster) last() (broadcastCall, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return broadcastCall{}, false
	}
	return b.calls[len(b.calls)-1], true
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}
