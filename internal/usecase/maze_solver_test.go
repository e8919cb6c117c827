package usecase

import (
	"context"
	"testing"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/maze"
	"github.com/coolavy/CS50AI/internal/repository"
	"github.com/coolavy/CS50AI/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMazeSolver_Solve(t *testing.T) {
	ctx := context.Background()

	t.Run("Solves and caches on a miss", func(t *testing.T) {
		// Given: an empty cache
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.BreadthFirst)

		repo.On("Get", ctx, "A B", "bfs").Return(nil, repository.ErrSolutionNotCached).Once()
		repo.On("Save", ctx, "A B", mock.AnythingOfType("*entity.MazeSolution")).Return(nil).Once()

		// When: solving with the default strategy
		solution, err := solver.Solve(ctx, "A B", "")

		// Then: the path walks right twice and is stored
		require.NoError(t, err)
		assert.Equal(t, "bfs", solution.Strategy)
		assert.Equal(t, []maze.Action{maze.Right, maze.Right}, solution.Actions)
		assert.Equal(t, []maze.Cell{{Row: 0, Col: 1}, {Row: 0, Col: 2}}, solution.Path)
		assert.Equal(t, 2, solution.Steps)
		assert.Equal(t, "A*B\n", solution.Rendered)
		assert.NotEmpty(t, solution.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Returns the cached solution", func(t *testing.T) {
		// Given: a cached DFS solution
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.BreadthFirst)
		cached := &entity.MazeSolution{ID: "cached", Strategy: "dfs"}

		repo.On("Get", ctx, "AB", "dfs").Return(cached, nil).Once()

		// When: asking for DFS explicitly
		solution, err := solver.Solve(ctx, "AB", "DFS")

		// Then: the cached value comes back without saving
		require.NoError(t, err)
		assert.Same(t, cached, solution)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache failures do not block solving", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.DepthFirst)

		repo.On("Get", ctx, "AB", "dfs").Return(nil, errRedisDown).Once()
		repo.On("Save", ctx, "AB", mock.Anything).Return(errRedisDown).Once()

		solution, err := solver.Solve(ctx, "AB", "")

		require.NoError(t, err)
		assert.Equal(t, []maze.Action{maze.Right}, solution.Actions)
	})

	t.Run("Canceled request skips the search", func(t *testing.T) {
		// Given: a request whose client already went away
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.DepthFirst)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		repo.On("Get", canceled, "AB", "dfs").Return(nil, repository.ErrSolutionNotCached).Once()

		// When: solving
		solution, err := solver.Solve(canceled, "AB", "")

		// Then: the context error is returned and nothing is cached
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, solution)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown strategy", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.BreadthFirst)

		_, err := solver.Solve(ctx, "AB", "astar")

		require.ErrorIs(t, err, apperror.ErrUnknownStrategy)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Malformed layout", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.BreadthFirst)

		repo.On("Get", ctx, "A  ", "bfs").Return(nil, repository.ErrSolutionNotCached).Once()

		_, err := solver.Solve(ctx, "A  ", "")

		require.ErrorIs(t, err, apperror.ErrMalformedLayout)
	})

	t.Run("Unreachable goal is not cached", func(t *testing.T) {
		repo := &mockSolutionRepo{}
		solver := NewMazeSolver(discardLogger(), repo, search.BreadthFirst)

		repo.On("Get", ctx, "A#B", "bfs").Return(nil, repository.ErrSolutionNotCached).Once()

		_, err := solver.Solve(ctx, "A#B", "")

		require.ErrorIs(t, err, apperror.ErrNoSolution)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}
