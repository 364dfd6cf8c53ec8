package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-api/internal/mines"
)

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to encode response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Error("unable to send response", slog.Any("error", err))
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

var errInternal = errors.New("internal error")

// statusOf maps rejections to client errors. Anything unrecognised is a
// server error.
func statusOf(err error, notFound int) int {
	switch {
	case errors.Is(err, mines.ErrGameNotFound):
		return notFound
	case errors.Is(err, mines.ErrInvalidDimensions),
		errors.Is(err, mines.ErrInvalidMineCount),
		errors.Is(err, mines.ErrInvalidCell),
		errors.Is(err, mines.ErrGameCompleted),
		errors.Is(err, mines.ErrCellRevealed),
		errors.Is(err, ErrBadParams):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func sendError(w http.ResponseWriter, logger *slog.Logger, err error, notFound int) {
	status := statusOf(err, notFound)
	if status == http.StatusInternalServerError {
		logger.Error("unable to handle request", slog.Any("error", err))
		err = errInternal
	}
	sendJSONOrLog(w, logger, status, wrapError(err))
}
