package handler

import (
	"context"
	"net/http"

	"pantry/internal/model"
	"pantry/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles inventory-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	h.listWith(w, r, h.service.List, "failed to retrieve products")
}

// Expired handles GET /expired requests.
func (h *ProductHandler) Expired(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	h.listWith(w, r, h.service.Expired, "failed to retrieve expired products")
}

// Expiring handles GET /expiring requests.
func (h *ProductHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	h.listWith(w, r, h.service.Expiring, "failed to retrieve expiring products")
}

func (h *ProductHandler) listWith(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context) ([]model.Product, error),
	failure string,
) {
	products, err := fetch(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, failure, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

// Add handles POST /add-product requests.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.ProductRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	_, err := h.service.Add(r.Context(), &req)
	writeResult(w, r, err, h.logger)
}

// Delete handles POST /delete-product requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.DeleteProductRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	writeResult(w, r, h.service.Delete(r.Context(), req.ProdID), h.logger)
}
