package ws

import (
	"encoding/json"

	"koridor-relay/internal/relay"
)

// clientEnvelope frames every inbound message: {"event": "...", "data": {...}}.
type clientEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type createRequest struct {
	Username string `json:"username"`
}

type joinRequest struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

type finishRequest struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	Winner   string `json:"winner"`
}

type moveRequest struct {
	Username string   `json:"username"`
	Room     string   `json:"room"`
	Move     moveBody `json:"move"`
	Counter  *int64   `json:"counter"`
}

type moveBody struct {
	Type     string          `json:"type"`
	Position json.RawMessage `json:"position"`
}

// decodeMove turns the wire move into a typed envelope. Positions are
// validated per kind here at the boundary; an unrecognized kind still yields
// an envelope so the relay can apply its checks in the documented order.
func decodeMove(body moveBody, counter int64) (relay.MoveEnvelope, error) {
	env := relay.MoveEnvelope{Kind: relay.MoveKind(body.Type), Counter: counter}
	switch env.Kind {
	case relay.KindMovePawn:
		var p relay.PawnPosition
		if err := json.Unmarshal(body.Position, &p); err != nil {
			return env, relay.ErrInvalidRequest
		}
		env.Pawn = &p
	case relay.KindPutTile:
		var t relay.TilePlacement
		if err := json.Unmarshal(body.Position, &t); err != nil {
			return env, relay.ErrInvalidRequest
		}
		env.Tile = &t
	}
	return env, nil
}
