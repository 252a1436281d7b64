package relay

import "context"

// Persisted field names, shared with the document store.
const (
	FieldPlayerTwo = "p2"
	FieldWinner    = "winner"
)

// Record is the durable shape of a room. Field names match the documents the
// original deployment already holds in the games collection.
type Record struct {
	Code      string  `bson:"gameid" json:"roomCode"`
	PlayerOne *string `bson:"p1" json:"participantA"`
	PlayerTwo *string `bson:"p2" json:"participantB"`
	Winner    *string `bson:"winner" json:"winner"`
}

// Store is the persistence gateway the coordinator writes room metadata and
// final results through. Implementations live in internal/store; failures are
// surfaced to the requesting connection as ErrStoreUnavailable.
type Store interface {
	SaveRoom(ctx context.Context, rec Record) error
	UpdateRoomField(ctx context.Context, code, field string, value any) error
	FindRoomByCode(ctx context.Context, code string) (Record, error)
}

// NewRecord builds the initial persisted document for a freshly created room.
func NewRecord(r *Room) Record {
	one := r.PlayerOne
	return Record{Code: r.Code, PlayerOne: &one}
}
