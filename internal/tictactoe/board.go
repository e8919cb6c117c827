// Package tictactoe is the 3x3 game model: whose turn it is, which moves are
// legal, what a move produces and when the game is over.
package tictactoe

import (
	"fmt"
	"strings"

	"github.com/coolavy/CS50AI/internal/apperror"
)

// Mark is the content of a board cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

const size = 3

// Board is a row-major 3x3 grid. It is a value: Result copies it.
type Board [size][size]Mark

// Move addresses one cell of the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// winLines lists every three-in-a-row: rows, then columns, then both diagonals.
var winLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

// Player returns the mark that moves next. X moves first.
func Player(board Board) Mark {
	xs, os := board.count()
	if xs <= os {
		return X
	}

	return O
}

// Opponent returns the other player's mark.
func Opponent(mark Mark) Mark {
	if mark == X {
		return O
	}
	return X
}

// Actions returns every empty cell in row-major order.
func Actions(board Board) []Move {
	moves := make([]Move, 0, size*size)
	for row := range size {
		for col := range size {
			if board[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

// Result returns the board after the current player takes move.
func Result(board Board, move Move) (Board, error) {
	if !move.inRange() {
		return board, fmt.Errorf("%w: cell (%d, %d) is off the board", apperror.ErrIllegalMove, move.Row, move.Col)
	}

	if board[move.Row][move.Col] != Empty {
		return board, fmt.Errorf("%w: cell (%d, %d) is occupied", apperror.ErrIllegalMove, move.Row, move.Col)
	}

	next := board
	next[move.Row][move.Col] = Player(board)

	return next, nil
}

// Winner returns the mark holding three in a row, or Empty.
// X is checked before O.
func Winner(board Board) Mark {
	for _, mark := range [2]Mark{X, O} {
		for _, line := range winLines {
			if board.at(line[0]) == mark && board.at(line[1]) == mark && board.at(line[2]) == mark {
				return mark
			}
		}
	}

	return Empty
}

// Terminal reports whether the game is over by a win or a full board.
func Terminal(board Board) bool {
	if Winner(board) != Empty {
		return true
	}

	return len(Actions(board)) == 0
}

// Utility scores a finished board: 1 when X has won, -1 when O has won, 0 otherwise.
func Utility(board Board) int {
	switch Winner(board) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// Validate checks that the board holds known marks and could arise from
// alternating play with X first.
func Validate(board Board) error {
	for row := range size {
		for col := range size {
			switch board[row][col] {
			case Empty, X, O:
			default:
				return fmt.Errorf("%w: unknown mark %q at (%d, %d)", apperror.ErrInvalidBoard, board[row][col], row, col)
			}
		}
	}

	xs, os := board.count()
	if xs-os != 0 && xs-os != 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xs, os)
	}

	return nil
}

// ParseBoard reads the form produced by Board.String: nine characters,
// row-major, with '.' (or ' ') for an empty cell.
func ParseBoard(s string) (Board, error) {
	var board Board

	if len(s) != size*size {
		return board, fmt.Errorf("%w: want %d cells, got %d", apperror.ErrInvalidBoard, size*size, len(s))
	}

	for i, ch := range s {
		switch ch {
		case '.', ' ':
		case 'X', 'x':
			board[i/size][i%size] = X
		case 'O', 'o':
			board[i/size][i%size] = O
		default:
			return board, fmt.Errorf("%w: unexpected %q at position %d", apperror.ErrInvalidBoard, ch, i)
		}
	}

	if err := Validate(board); err != nil {
		return board, err
	}

	return board, nil
}

// String renders the board row-major with '.' for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(size * size)

	for row := range size {
		for col := range size {
			if that[row][col] == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(that[row][col]))
		}
	}

	return sb.String()
}

func (that Board) at(m Move) Mark {
	return that[m.Row][m.Col]
}

func (that Board) count() (int, int) {
	var xs, os int
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case X:
				xs++
			case O:
				os++
			}
		}
	}

	return xs, os
}

func (that Move) inRange() bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}
