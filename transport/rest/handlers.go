package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coolavy/CS50AI/internal/apperror"
	"github.com/coolavy/CS50AI/internal/service"
	"github.com/coolavy/CS50AI/internal/tictactoe"
)

// maxMoveBodyBytes caps /tictactoe/move bodies; a board is nine characters.
const maxMoveBodyBytes = 1024

type moveRequest struct {
	Board string `json:"board"`
}

type solveRequest struct {
	Layout   string `json:"layout"`
	Strategy string `json:"strategy,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) bestMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decodeBody(w, r, maxMoveBodyBytes, &req) {
		return
	}

	board, err := tictactoe.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := that.games.BestMove(r.Context(), board)
	if err != nil {
		that.writeFailure(w, "bestMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, decision)
}

func (that *Server) solveMaze(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !that.decodeBody(w, r, that.maxBodyBytes, &req) {
		return
	}

	solution, err := that.mazes.Solve(r.Context(), req.Layout, req.Strategy)
	if err != nil {
		that.writeFailure(w, "solveMaze", err)
		return
	}

	that.writeJSON(w, http.StatusOK, solution)
}

// decodeBody reads at most limit bytes of JSON into v. On failure it writes
// the error response and returns false.
func (that *Server) decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			that.writeError(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return false
		}

		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

// writeFailure maps domain errors to status codes. Unknown errors are logged
// and hidden from the client.
func (that *Server) writeFailure(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrMalformedLayout),
		errors.Is(err, apperror.ErrUnknownStrategy):
		that.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoAvailableMoves):
		that.writeError(w, http.StatusConflict, "board is terminal")
	case errors.Is(err, apperror.ErrNoSolution):
		that.writeError(w, http.StatusUnprocessableEntity, apperror.ErrNoSolution.Error())
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, msg string) {
	that.writeJSON(w, status, errorResponse{Error: msg})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
