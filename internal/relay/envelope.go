package relay

// MoveKind tags a move envelope. The set is closed: anything else is
// rejected with ErrInvalidMoveKind before it reaches the other player.
type MoveKind string

const (
	// KindMovePawn is a positional pawn move.
	KindMovePawn MoveKind = "move"
	// KindPutTile places a wall tile with an orientation.
	KindPutTile MoveKind = "putTile"
)

func (k MoveKind) Valid() bool {
	return k == KindMovePawn || k == KindPutTile
}

type PawnPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type TilePlacement struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
}

// MoveEnvelope is the transient, opaque description of one game action. The
// relay never interprets the payload beyond matching it to its kind; the
// counter is supplied by the sender and forwarded unmodified.
type MoveEnvelope struct {
	Kind    MoveKind
	Pawn    *PawnPosition
	Tile    *TilePlacement
	Counter int64
}

// broadcastBody flattens the kind-specific payload plus the sender's counter
// into the shape receivers expect. Returns nil when the payload is missing
// for the declared kind.
func (e MoveEnvelope) broadcastBody() map[string]any {
	switch e.Kind {
	case KindMovePawn:
		if e.Pawn == nil {
			return nil
		}
		return map[string]any{"x": e.Pawn.X, "y": e.Pawn.Y, "counter": e.Counter}
	case KindPutTile:
		if e.Tile == nil {
			return nil
		}
		return map[string]any{
			"x": e.Tile.X, "y": e.Tile.Y,
			"orientation": e.Tile.Orientation,
			"counter":     e.Counter,
		}
	}
	return nil
}
