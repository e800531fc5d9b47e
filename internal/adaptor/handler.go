package adaptor

import (
	"errors"
	"net/http"

	"product-app/internal/usecase"
	"product-app/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Product *ProductHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Product: NewProductHandler(service.Product, log),
	}
}

// handleServiceError maps a flow error to a status code and {errorMessage}.
// Only AppError messages reach the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *usecase.AppError
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w)
		return
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.Stringer("kind", appErr.Kind),
	}

	switch appErr.Kind {
	case usecase.KindValidation, usecase.KindConflict, usecase.KindTransport:
		log.Warn(operation+" rejected", fields...)
		utils.ResponseBadRequest(w, appErr.Message)

	case usecase.KindAuthentication:
		log.Warn(operation+" unauthorized", fields...)
		utils.ResponseUnauthorized(w, appErr.Message)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, appErr.Message)

	case usecase.KindStore:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseError(w, http.StatusInternalServerError, appErr.Message)

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w)
	}
}
