package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	actionState = "game:state"
	actionMove  = "game:move"
	actionJump  = "game:jump"
	actionNew   = "game:new"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`
}

type ResponsePayload struct {
	Game  *GameResponse `json:"game,omitempty"`
	HTML  string        `json:"html,omitempty"`
	Error string        `json:"error,omitempty"`
}

type GameResponse struct {
	Board   entity.Board   `json:"board"`
	History []entity.Board `json:"history"`
	Step    int            `json:"step"`
	Turn    string         `json:"turn"`
	Winner  string         `json:"winner,omitempty"`
	Line    []int          `json:"line,omitempty"`
	Draw    bool           `json:"draw"`
	Status  string         `json:"status"`
}

func newGameResponse(game *tictactoe.Game) *GameResponse {
	response := &GameResponse{
		Board:   game.Current(),
		History: game.History(),
		Step:    game.Step(),
		Turn:    game.Turn(),
		Draw:    game.IsDraw(),
		Status:  game.Status(),
	}

	if win, ok := game.Winner(); ok {
		response.Winner = win.Mark
		response.Line = win.Line[:]
	}

	return response
}
