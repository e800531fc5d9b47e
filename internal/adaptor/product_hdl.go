package adaptor

import (
	"encoding/json"
	"net/http"

	"product-app/internal/usecase"
	"product-app/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// CreateProduct handles POST /product
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		utils.ResponseBadRequest(w, "Invalid body")
		return
	}

	product, err := h.service.Create(r.Context(), attrs)
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseSuccess(w, product)
}

// GetProducts handles GET /product/all
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseSuccess(w, products)
}

// UploadImage handles POST /product/{id}/image
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	image, err := h.service.UploadImage(r.Context(), productID, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		handleServiceError(w, h.log, err, "upload product image")
		return
	}

	utils.ResponseSuccess(w, image)
}
