package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/maze"
	"github.com/coolavy/CS50AI/internal/repository"
	"github.com/coolavy/CS50AI/internal/search"
	"github.com/google/uuid"
)

type solutionRepo interface {
	Save(ctx context.Context, layout string, solution *entity.MazeSolution) error
	Get(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error)
}

// MazeSolver parses layouts, searches them and caches the results.
type MazeSolver struct {
	logger          *slog.Logger
	solutionRepo    solutionRepo
	defaultStrategy search.Strategy
}

func NewMazeSolver(logger *slog.Logger, solutionRepo solutionRepo, defaultStrategy search.Strategy) *MazeSolver {
	return &MazeSolver{
		logger:          logger.With("component", "maze_solver"),
		solutionRepo:    solutionRepo,
		defaultStrategy: defaultStrategy,
	}
}

// Solve finds a path through layout. An empty strategy uses the default.
// Only successful solutions are cached.
func (that *MazeSolver) Solve(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error) {
	chosen := that.defaultStrategy
	if strategy != "" {
		parsed, err := search.ParseStrategy(strategy)
		if err != nil {
			return nil, err
		}
		chosen = parsed
	}

	log := that.logger.With("method", "Solve", "strategy", chosen)

	cached, err := that.solutionRepo.Get(ctx, layout, string(chosen))
	switch {
	case err == nil:
		log.Info("solution cache hit", "id", cached.ID)
		return cached, nil
	case !errors.Is(err, repository.ErrSolutionNotCached):
		log.Warn("failed to read solution cache", "error", err)
	}

	// the search itself cannot be interrupted
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("maze request canceled: %w", err)
	}

	grid, err := maze.Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	expanded := 0
	sol, err := search.Solve(grid, chosen,
		search.WithOnExpand(func(node search.Node) {
			expanded++
			log.Debug("expanding", "row", node.State.Row, "col", node.State.Col)
		}),
	)
	if err != nil {
		log.Info("maze has no solution", "expanded", expanded)
		return nil, fmt.Errorf("failed to solve maze: %w", err)
	}

	solution := &entity.MazeSolution{
		ID:       uuid.NewString(),
		Strategy: string(chosen),
		Actions:  sol.Actions,
		Path:     sol.States,
		Steps:    len(sol.Actions),
		Explored: sol.Explored,
		Rendered: maze.Render(grid, sol.States),
	}

	log.Info("maze solved", "id", solution.ID, "steps", solution.Steps, "explored", solution.Explored)

	if err = that.solutionRepo.Save(ctx, layout, solution); err != nil {
		log.Warn("failed to cache solution", "error", err)
	}

	return solution, nil
}
