package handlers

import (
	"net/http"

	"github.com/AmirRezaM75/algobattle/algorithms"
	"github.com/AmirRezaM75/algobattle/schemas"
	"github.com/go-chi/chi/v5"
)

type AlgorithmHandler struct {
	registry *algorithms.Registry
}

func NewAlgorithmHandler(router chi.Router, registry *algorithms.Registry) {
	algorithmHandler := AlgorithmHandler{registry: registry}
	router.Get("/algorithms", algorithmHandler.list)
	router.Get("/algorithms/{category}", algorithmHandler.byCategory)
}

func (algorithmHandler AlgorithmHandler) list(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, schemas.NewAlgorithmResponses(algorithmHandler.registry.List()))
}

func (algorithmHandler AlgorithmHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := algorithms.ParseCategory(chi.URLParam(r, "category"))

	if !ok {
		respond(w, http.StatusNotFound, schemas.ErrorResponse{Message: "Category not found.", Reason: "UNKNOWN_CATEGORY"})
		return
	}

	respond(w, http.StatusOK, schemas.NewAlgorithmResponses(algorithmHandler.registry.ByCategory(category)))
}
