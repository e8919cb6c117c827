package entity

import "github.com/coolavy/CS50AI/internal/tictactoe"

// Decision is the optimal move computed for a board.
type Decision struct {
	Board   string         `json:"board"`
	Player  tictactoe.Mark `json:"player"`
	Move    tictactoe.Move `json:"move"`
	Utility int            `json:"utility"`
	Nodes   int            `json:"nodes"`
}
