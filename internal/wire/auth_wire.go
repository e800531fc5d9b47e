package wire

import (
	"product-app/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
}
