package handler

import (
	"context"
	"net/http"

	"pantry/internal/model"
	"pantry/internal/service"

	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe-related HTTP requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// List handles GET /recipes requests.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	h.listWith(w, r, h.service.List, "failed to retrieve recipes")
}

// Makeable handles GET /makeable requests.
func (h *RecipeHandler) Makeable(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	h.listWith(w, r, h.service.Makeable, "failed to retrieve makeable recipes")
}

func (h *RecipeHandler) listWith(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context) ([]model.Recipe, error),
	failure string,
) {
	recipes, err := fetch(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, failure, h.logger)
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}

	writeJSON(w, http.StatusOK, recipes)
}

// Add handles POST /add-recipe requests.
func (h *RecipeHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.RecipeRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	_, err := h.service.Add(r.Context(), &req)
	writeResult(w, r, err, h.logger)
}

// Delete handles POST /delete-recipe requests.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.DeleteRecipeRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	writeResult(w, r, h.service.Delete(r.Context(), req.RcpID), h.logger)
}

// Cook handles POST /make-recipe requests.
func (h *RecipeHandler) Cook(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.CookRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	writeResult(w, r, h.service.Cook(r.Context(), req.RcpName), h.logger)
}
