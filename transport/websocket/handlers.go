package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/entity"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errMoveRequired   = errors.New("move is required")
	errBadPayload     = errors.New("invalid payload")
)

// clientErrors are shown to the client as is; anything else is logged.
var clientErrors = []error{
	errGameIDRequired,
	errMoveRequired,
	errBadPayload,
	apperror.ErrInvalidMark,
	apperror.ErrIllegalMove,
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrGameNotFound,
	apperror.ErrGameConflict,
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message) (*entity.Game, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	return that.games.NewGame(ctx, payload.Mark)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message) (*entity.Game, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	if payload.Move == nil {
		return nil, errMoveRequired
	}

	return that.games.MakeTurn(ctx, payload.GameID, *payload.Move)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message) (*entity.Game, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.games.GetGame(ctx, payload.GameID)
}

// handleGameAbandon deletes the game and answers with its last state.
func (that *Server) handleGameAbandon(ctx context.Context, msg *Message) (*entity.Game, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.games.AbandonGame(ctx, payload.GameID)
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	return &payload, nil
}

func (that *Server) clientError(action string, err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	that.logger.Error("failed to process message", "action", action, "error", err)

	return "internal error"
}
