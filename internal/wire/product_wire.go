package wire

import (
	"product-app/internal/adaptor"
	"product-app/pkg/middleware"
	"product-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, tokens *utils.TokenManager, log *zap.Logger) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/product", func(r chi.Router) {
		// Every product route requires a valid bearer token
		r.Use(middleware.AuthJWT(tokens, log))

		r.Post("/", productHandler.CreateProduct)         // POST /product
		r.Get("/all", productHandler.GetProducts)         // GET /product/all
		r.Post("/{id}/image", productHandler.UploadImage) // POST /product/{id}/image
	})
}
