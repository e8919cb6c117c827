package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
	"github.com/stretchr/testify/mock"
)

var errRedisDown = errors.New("redis down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// Update applies fn to the game returned by the expectation, as the real
// repository does with the stored one.
func (m *mockGameRepo) Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	game := args.Get(0).(*entity.Game)
	if err := fn(game); err != nil {
		return nil, err
	}

	return game, nil
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBot struct {
	mock.Mock
}

func (m *mockBot) Decide(ctx context.Context, board tictactoe.Board) (*entity.Decision, error) {
	args := m.Called(ctx, board)
	decision, _ := args.Get(0).(*entity.Decision)
	return decision, args.Error(1)
}

func (m *mockBot) MakeTurn(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

type mockSolutionRepo struct {
	mock.Mock
}

func (m *mockSolutionRepo) Save(ctx context.Context, layout string, solution *entity.MazeSolution) error {
	return m.Called(ctx, layout, solution).Error(0)
}

func (m *mockSolutionRepo) Get(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error) {
	args := m.Called(ctx, layout, strategy)
	solution, _ := args.Get(0).(*entity.MazeSolution)
	return solution, args.Error(1)
}
