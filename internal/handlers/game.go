package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-api/internal/config"
	"github.com/vancomm/minesweeper-api/internal/games"
	"github.com/vancomm/minesweeper-api/internal/mines"
)

type GameHandler struct {
	logger  *slog.Logger
	service *games.Service
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	service *games.Service,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger:  logger,
		service: service,
		ws:      ws,
	}

	return handler
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeParams[NewGameParams](r)
	if err != nil {
		sendError(w, g.logger, err, http.StatusBadRequest)
		return
	}

	game, err := g.service.NewGame(r.Context(), mines.Params(dto))
	if err != nil {
		sendError(w, g.logger, err, http.StatusBadRequest)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTO(game))
}

// Turn reveals a cell. An unknown game is reported as a bad request.
func (g GameHandler) Turn(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeParams[TurnDTO](r)
	if err != nil {
		sendError(w, g.logger, err, http.StatusBadRequest)
		return
	}

	game, err := g.service.Move(r.Context(), dto.GameID, dto.Row, dto.Col)
	if err != nil {
		sendError(w, g.logger, err, http.StatusBadRequest)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTO(game))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	game, err := g.service.Fetch(r.Context(), r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, err, http.StatusNotFound)
		return
	}

	sendJSONOrLog(w, g.logger, http.StatusOK, NewGameDTO(game))
}
