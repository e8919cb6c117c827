package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
	"github.com/google/uuid"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type bot interface {
	Decide(ctx context.Context, board tictactoe.Board) (*entity.Decision, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
}

// GameManager runs human-versus-bot games and answers best-move queries.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	bot      bot
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot bot) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		bot:      bot,
	}
}

// NewGame creates a game where the human plays mark. When the human is O
// the bot opens before the game is returned.
func (that *GameManager) NewGame(ctx context.Context, mark tictactoe.Mark) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), mark)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("failed bot opening: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", game.ID, "human", game.Human)

	return game, nil
}

// MakeTurn plays the human move and, unless that ends the game, the bot reply.
// Both moves are applied to the latest stored state in one update.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := game.MakeTurn(game.Human, move); err != nil {
			return fmt.Errorf("failed make turn: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.bot.MakeTurn(ctx, game); err != nil {
				return fmt.Errorf("failed bot turn: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// AbandonGame removes the game and returns its last state.
func (that *GameManager) AbandonGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game abandoned", "gameID", gameID, "status", game.Status)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// BestMove validates board and returns the optimal move for the side to move.
func (that *GameManager) BestMove(ctx context.Context, board tictactoe.Board) (*entity.Decision, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, err
	}

	decision, err := that.bot.Decide(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to decide: %w", err)
	}

	return decision, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

