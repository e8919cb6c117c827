// Package minimax picks the game-theoretically optimal tic-tac-toe move by
// searching the whole game tree. X maximizes Utility, O minimizes it.
package minimax

import "github.com/coolavy/CS50AI/internal/tictactoe"

// Bounds outside the utility range {-1, 0, 1}.
const (
	lowerBound = -2
	upperBound = 2
)

// Decision is the outcome of a full search from one board.
type Decision struct {
	Player  tictactoe.Mark
	Move    tictactoe.Move
	Utility int
	// Nodes counts every board visited, the root included.
	Nodes int
	// Found is false when the board was already terminal.
	Found bool
}

// BestMove returns the optimal move for the side to move, or false when the
// board is terminal and there is nothing to play.
func BestMove(board tictactoe.Board) (tictactoe.Move, bool) {
	d := Search(board)
	return d.Move, d.Found
}

// Search runs the full minimax search from board.
func Search(board tictactoe.Board) Decision {
	s := &searcher{}
	player := tictactoe.Player(board)

	if tictactoe.Terminal(board) {
		return Decision{Player: player, Utility: tictactoe.Utility(board), Nodes: 1}
	}

	var (
		value int
		move  tictactoe.Move
	)
	if player == tictactoe.X {
		value, move = s.maxValue(board)
	} else {
		value, move = s.minValue(board)
	}

	return Decision{
		Player:  player,
		Move:    move,
		Utility: value,
		Nodes:   s.nodes,
		Found:   true,
	}
}

type searcher struct {
	nodes int
}

// maxValue keeps the first move reaching a strictly greater value.
func (s *searcher) maxValue(board tictactoe.Board) (int, tictactoe.Move) {
	s.nodes++
	if tictactoe.Terminal(board) {
		return tictactoe.Utility(board), tictactoe.Move{}
	}

	best, bestMove := lowerBound, tictactoe.Move{}
	for _, move := range tictactoe.Actions(board) {
		next, err := tictactoe.Result(board, move)
		if err != nil {
			// Actions only yields empty cells.
			continue
		}

		if v, _ := s.minValue(next); v > best {
			best, bestMove = v, move
		}
	}

	return best, bestMove
}

// minValue keeps the first move reaching a strictly smaller value.
func (s *searcher) minValue(board tictactoe.Board) (int, tictactoe.Move) {
	s.nodes++
	if tictactoe.Terminal(board) {
		return tictactoe.Utility(board), tictactoe.Move{}
	}

	best, bestMove := upperBound, tictactoe.Move{}
	for _, move := range tictactoe.Actions(board) {
		next, err := tictactoe.Result(board, move)
		if err != nil {
			continue
		}

		if v, _ := s.maxValue(next); v < best {
			best, bestMove = v, move
		}
	}

	return best, bestMove
}
