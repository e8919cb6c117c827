package websocket

import (
	"encoding/json"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
)

const (
	actionGameNew     = "game:new"
	actionGameTurn    = "game:turn"
	actionGameState   = "game:state"
	actionGameAbandon = "game:abandon"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is the client side of every action; each action reads its own fields.
type Payload struct {
	Mark   tictactoe.Mark  `json:"mark,omitempty"`
	GameID string          `json:"game_id,omitempty"`
	Move   *tictactoe.Move `json:"move,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}
