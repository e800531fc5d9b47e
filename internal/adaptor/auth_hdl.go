package adaptor

import (
	"encoding/json"
	"net/http"

	"product-app/internal/dto/request"
	"product-app/internal/usecase"
	"product-app/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "signup")
		return
	}

	utils.ResponseCreated(w, user)
}

// Signin handles POST /signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req request.SigninRequest

	// Any unreadable body is reported like a bad password.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseUnauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "signin")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	utils.ResponseSuccess(w, utils.MessageResponse{Message: "Signed-in successfully"})
}
