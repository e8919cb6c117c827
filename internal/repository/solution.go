package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/redis/go-redis/v9"
)

var ErrSolutionNotCached = errors.New("solution not cached")

// SolutionRepository caches maze solutions by layout and strategy.
type SolutionRepository interface {
	Save(ctx context.Context, layout string, solution *entity.MazeSolution) error
	Get(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error)
}

type dbSolution struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSolutionRepository(client *redis.Client, ttl time.Duration) SolutionRepository {
	return &dbSolution{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSolution) Save(ctx context.Context, layout string, solution *entity.MazeSolution) error {
	solutionJSON, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("could not marshal solution: %w", err)
	}

	key := SolutionKey(layout, solution.Strategy)
	if err = that.client.Set(ctx, key, solutionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set solution: %w", err)
	}

	return nil
}

func (that *dbSolution) Get(ctx context.Context, layout, strategy string) (*entity.MazeSolution, error) {
	response, err := that.client.Get(ctx, SolutionKey(layout, strategy)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSolutionNotCached
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}

	var solution entity.MazeSolution
	if err = json.Unmarshal([]byte(response), &solution); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}

	return &solution, nil
}

// SolutionKey is "maze:<strategy>:<xxhash64 of layout in hex>".
func SolutionKey(layout, strategy string) string {
	return "maze:" + strategy + ":" + strconv.FormatUint(xxhash.Sum64String(layout), 16)
}
