package wire

import (
	"fmt"
	"net/http"

	"product-app/internal/adaptor"
	"product-app/internal/data/repository"
	"product-app/internal/usecase"
	"product-app/pkg/middleware"
	"product-app/pkg/storage"
	"product-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, objects storage.ObjectStore, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)

	service := usecase.NewService(repo, objects, tokens, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(handler *adaptor.Handler, tokens *utils.TokenManager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Unknown routes and unsupported methods are both reported as unknown paths.
	r.NotFound(unknownPath)
	r.MethodNotAllowed(unknownPath)

	wireAuth(r, handler.Auth)
	wireProduct(r, handler.Product, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

func unknownPath(w http.ResponseWriter, r *http.Request) {
	utils.ResponseNotFound(w, fmt.Sprintf("Unknown path: %s '%s'", r.Method, r.URL.Path))
}
