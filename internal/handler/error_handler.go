package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// handleError maps service errors onto HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		respondError(w, statusForCode(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, models.ErrConflict):
		respondError(w, http.StatusConflict, "CONFLICT", err.Error())

	default:
		// Internal details stay in the log, not in the response
		logger.Error("internal server error",
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// statusForCode maps the error codes this API produces onto HTTP
// statuses: INVALID_INPUT covers malformed queries and bodies, NOT_FOUND
// unknown listings and inquiries, CONFLICT actions against a sold
// vehicle, SAVE_FAILED a remote store that rejected a write
func statusForCode(code string) int {
	switch code {
	case "INVALID_INPUT":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "CONFLICT":
		return http.StatusConflict
	case "SAVE_FAILED":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
