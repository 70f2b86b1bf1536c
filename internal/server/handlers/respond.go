package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/postboard/pkg/api"
)

// WriteJSON отправляет JSON ответ; ошибка кодирования логируется
func WriteJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// WriteError отправляет api.ErrorResponse. Используется и handlers, и middleware
func WriteError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	WriteJSON(w, logger, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}

// responder пишет JSON ответы от имени handler'а
type responder struct {
	logger *slog.Logger
}

func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	WriteJSON(w, h.logger, data, statusCode)
}

func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	WriteError(w, h.logger, message, statusCode)
}
