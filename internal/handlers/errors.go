package handlers

import (
	"errors"
	"net/http"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError переводит бизнес-ошибки сервиса в HTTP-ответы.
// Возвращает false, если ошибка не бизнесовая (тогда это 500).
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithPayloads(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "PERMISSION_DENIED":
		return http.StatusForbidden
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// serviceError - общий хвост обработчиков: бизнес-ошибка или 500
func serviceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, err.Error())
}
