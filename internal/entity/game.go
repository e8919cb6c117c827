package entity

import (
	"fmt"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Game is a human-versus-bot tic-tac-toe session.
type Game struct {
	ID     string          `json:"id"`
	Board  tictactoe.Board `json:"board"`
	Human  tictactoe.Mark  `json:"human"`
	Bot    tictactoe.Mark  `json:"bot"`
	Turn   tictactoe.Mark  `json:"turn,omitempty"`
	Winner string          `json:"winner,omitempty"`
	Status string          `json:"status"`
}

// NewGame starts a session where the human plays mark.
func NewGame(id string, human tictactoe.Mark) (*Game, error) {
	if human != tictactoe.X && human != tictactoe.O {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, human)
	}

	board := tictactoe.InitialState()

	return &Game{
		ID:     id,
		Board:  board,
		Human:  human,
		Bot:    tictactoe.Opponent(human),
		Turn:   tictactoe.Player(board),
		Status: StatusOngoing,
	}, nil
}

// DetermineGameResult returns the winning mark, PlayerTie for a full board,
// or "" while the game goes on.
func (that *Game) DetermineGameResult() string {
	if winner := tictactoe.Winner(that.Board); winner != tictactoe.Empty {
		return string(winner)
	}

	if tictactoe.Terminal(that.Board) {
		return PlayerTie
	}

	return ""
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	case "":
		that.Status = StatusOngoing
		that.Turn = tictactoe.Player(that.Board)
	default:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	}
}

// MakeTurn plays move for mark, which must be the side to move.
func (that *Game) MakeTurn(mark tictactoe.Mark, move tictactoe.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(that.Board, move)
	if err != nil {
		return err
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsBotTurn reports whether the bot has to move next.
func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.Bot
}
