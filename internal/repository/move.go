package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coolavy/CS50AI/internal/entity"
	"github.com/coolavy/CS50AI/internal/tictactoe"
	"github.com/redis/go-redis/v9"
)

var ErrMoveNotCached = errors.New("move not cached")

// MoveRepository caches minimax decisions by board.
type MoveRepository interface {
	Save(ctx context.Context, decision *entity.Decision) error
	GetByBoard(ctx context.Context, board tictactoe.Board) (*entity.Decision, error)
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMove) Save(ctx context.Context, decision *entity.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("could not marshal decision: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(decision.Board), decisionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set decision: %w", err)
	}

	return nil
}

func (that *dbMove) GetByBoard(ctx context.Context, board tictactoe.Board) (*entity.Decision, error) {
	response, err := that.client.Get(ctx, moveKey(board.String())).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMoveNotCached
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	var decision entity.Decision
	if err = json.Unmarshal([]byte(response), &decision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decision: %w", err)
	}

	return &decision, nil
}

func moveKey(board string) string {
	return "move:" + board
}
