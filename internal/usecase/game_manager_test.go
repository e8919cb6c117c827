package usecase

import (
	"context"
	"testing"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// botPlays makes the mocked bot put its mark on move.
func botPlays(move tictactoe.Move) func(mock.Arguments) {
	return func(args mock.Arguments) {
		game := args.Get(1).(*entity.Game)
		_ = game.MakeTurn(game.Bot, move)
	}
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Human as X gets an empty board", func(t *testing.T) {
		// Given: a repository that accepts the game
		repo := &mockGameRepo{}
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), repo, bot)

		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: creating a game as X
		game, err := manager.NewGame(ctx, tictactoe.X)

		// Then: the board is empty, X is to move and the bot did not play
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, tictactoe.InitialState(), game.Board)
		assert.Equal(t, tictactoe.X, game.Turn)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("Human as O lets the bot open", func(t *testing.T) {
		// Given: a bot that opens in the corner
		repo := &mockGameRepo{}
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), repo, bot)

		bot.On("MakeTurn", ctx, mock.AnythingOfType("*entity.Game")).Run(botPlays(tictactoe.Move{})).Return(nil).Once()
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: creating a game as O
		game, err := manager.NewGame(ctx, tictactoe.O)

		// Then: the stored game already holds the bot's opening
		require.NoError(t, err)
		assert.Equal(t, "X........", game.Board.String())
		assert.Equal(t, tictactoe.O, game.Turn)
		bot.AssertExpectations(t)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), &mockGameRepo{}, &mockBot{})

		_, err := manager.NewGame(ctx, tictactoe.Empty)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Returns error if the repository fails", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		repo.On("CreateOrUpdate", ctx, mock.Anything).Return(errRedisDown).Once()

		game, err := manager.NewGame(ctx, tictactoe.X)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	newStoredGame := func(t *testing.T) *entity.Game {
		t.Helper()

		game, err := entity.NewGame("g1", tictactoe.X)
		require.NoError(t, err)

		return game
	}

	t.Run("Human move is answered by the bot", func(t *testing.T) {
		// Given: a stored game with X to move
		repo := &mockGameRepo{}
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), repo, bot)

		repo.On("Update", ctx, "g1").Return(newStoredGame(t), nil).Once()
		bot.On("MakeTurn", ctx, mock.Anything).Run(botPlays(tictactoe.Move{Row: 1, Col: 1})).Return(nil).Once()

		// When: the human takes a corner
		game, err := manager.MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 0})

		// Then: both moves are on the board and it is the human's turn
		require.NoError(t, err)
		assert.Equal(t, "X...O....", game.Board.String())
		assert.Equal(t, tictactoe.X, game.Turn)
		repo.AssertExpectations(t)
		bot.AssertExpectations(t)
	})

	t.Run("Winning human move skips the bot", func(t *testing.T) {
		// Given: X one move from winning
		repo := &mockGameRepo{}
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), repo, bot)

		board, err := tictactoe.ParseBoard("XX.OO....")
		require.NoError(t, err)
		stored := &entity.Game{ID: "g1", Board: board, Human: tictactoe.X, Bot: tictactoe.O, Turn: tictactoe.X, Status: entity.StatusOngoing}

		repo.On("Update", ctx, "g1").Return(stored, nil).Once()

		// When: X completes the row
		game, err := manager.MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 2})

		// Then: the game is finished and the bot never moved
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)
	})

	t.Run("Bot failure aborts the update", func(t *testing.T) {
		repo := &mockGameRepo{}
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), repo, bot)

		repo.On("Update", ctx, "g1").Return(newStoredGame(t), nil).Once()
		bot.On("MakeTurn", ctx, mock.Anything).Return(errRedisDown).Once()

		game, err := manager.MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})

	t.Run("Concurrent turns surface a conflict", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		repo.On("Update", ctx, "g1").Return(nil, apperror.ErrGameConflict).Once()

		_, err := manager.MakeTurn(ctx, "g1", tictactoe.Move{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrGameConflict)
	})

	t.Run("Illegal move is not stored", func(t *testing.T) {
		// Given: a game with the center taken
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		stored := newStoredGame(t)
		require.NoError(t, stored.MakeTurn(tictactoe.X, tictactoe.Move{Row: 1, Col: 1}))
		require.NoError(t, stored.MakeTurn(tictactoe.O, tictactoe.Move{Row: 0, Col: 0}))

		repo.On("Update", ctx, "g1").Return(stored, nil).Once()

		// When: the human plays on the occupied center
		_, err := manager.MakeTurn(ctx, "g1", tictactoe.Move{Row: 1, Col: 1})

		// Then: ErrIllegalMove aborts the update
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Unknown game", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		repo.On("Update", ctx, "nope").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := manager.MakeTurn(ctx, "nope", tictactoe.Move{})

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameManager_AbandonGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the game and returns its last state", func(t *testing.T) {
		// Given: a stored game
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		stored, err := entity.NewGame("g1", tictactoe.X)
		require.NoError(t, err)

		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		repo.On("DeleteByID", ctx, "g1").Return(nil).Once()

		// When: the human abandons it
		game, err := manager.AbandonGame(ctx, "g1")

		// Then: the last state comes back and the game is deleted
		require.NoError(t, err)
		assert.Same(t, stored, game)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown game is not deleted", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		repo.On("GetByID", ctx, "nope").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := manager.AbandonGame(ctx, "nope")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})

	t.Run("Delete failure is returned", func(t *testing.T) {
		repo := &mockGameRepo{}
		manager := NewGameManager(discardLogger(), repo, &mockBot{})

		stored, err := entity.NewGame("g1", tictactoe.O)
		require.NoError(t, err)

		repo.On("GetByID", ctx, "g1").Return(stored, nil).Once()
		repo.On("DeleteByID", ctx, "g1").Return(errRedisDown).Once()

		game, err := manager.AbandonGame(ctx, "g1")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameManager_BestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Delegates valid boards to the bot", func(t *testing.T) {
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), &mockGameRepo{}, bot)
		want := &entity.Decision{Board: ".........", Player: tictactoe.X}

		bot.On("Decide", ctx, tictactoe.InitialState()).Return(want, nil).Once()

		got, err := manager.BestMove(ctx, tictactoe.InitialState())

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("Rejects impossible boards", func(t *testing.T) {
		bot := &mockBot{}
		manager := NewGameManager(discardLogger(), &mockGameRepo{}, bot)

		_, err := manager.BestMove(ctx, tictactoe.Board{{tictactoe.O}})

		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
		bot.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything)
	})
}
