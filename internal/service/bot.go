package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/minimax"
	"github.com/coolavy/CS50AI/internal/repository"
	"github.com/coolavy/CS50AI/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type moveRepo interface {
	Save(ctx context.Context, decision *entity.Decision) error
	GetByBoard(ctx context.Context, board tictactoe.Board) (*entity.Decision, error)
}

type BotService interface {
	Decide(ctx context.Context, board tictactoe.Board) (*entity.Decision, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	logger   *slog.Logger
	moveRepo moveRepo
}

// NewBotService returns a bot that plays the minimax move. Decisions are
// cached in moveRepo; cache failures are logged and the search runs anyway.
func NewBotService(logger *slog.Logger, moveRepo moveRepo) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		moveRepo: moveRepo,
	}
}

// Decide returns the optimal move for the side to move on board.
func (that *botService) Decide(ctx context.Context, board tictactoe.Board) (*entity.Decision, error) {
	log := that.logger.With("method", "Decide", "board", board.String())

	if tictactoe.Terminal(board) {
		return nil, ErrNoAvailableMoves
	}

	cached, err := that.moveRepo.GetByBoard(ctx, board)
	switch {
	case err == nil:
		log.Debug("decision cache hit")
		return cached, nil
	case !errors.Is(err, repository.ErrMoveNotCached):
		log.Warn("failed to read decision cache", "error", err)
	}

	result := minimax.Search(board)
	if !result.Found {
		return nil, ErrNoAvailableMoves
	}

	decision := &entity.Decision{
		Board:   board.String(),
		Player:  result.Player,
		Move:    result.Move,
		Utility: result.Utility,
		Nodes:   result.Nodes,
	}

	log.Debug("decision computed", "move", decision.Move, "utility", decision.Utility, "nodes", decision.Nodes)

	if err = that.moveRepo.Save(ctx, decision); err != nil {
		log.Warn("failed to cache decision", "error", err)
	}

	return decision, nil
}

// MakeTurn plays the bot's move in game.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !game.IsBotTurn() {
		return fmt.Errorf("bot cannot move: %w", apperror.ErrNotYourTurn)
	}

	decision, err := that.Decide(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("bot failed to decide: %w", err)
	}

	if err = game.MakeTurn(game.Bot, decision.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
