package handlers

import (
	"net/http"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products/{id}/reviews", h.GetByProduct)
	r.Get("/products/{id}/reviews/stats", h.GetStats)
	r.Post("/products/{id}/reviews", h.Create)
	r.Put("/reviews/{id}", h.Update)
	r.Delete("/reviews/{id}", h.Delete)
	r.Get("/me/reviews", h.GetMine)
}

type ReviewCreateRequest struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	UserName string `json:"userName,omitempty"`
}

func (h *ReviewHandler) GetByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.reviews.ForProduct(r.Context(), id))
}

func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.reviews.Stats(r.Context(), id))
}

// Create attributes the review to the signed-in shopper. A name in the
// body overrides the gateway's.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req ReviewCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := req.UserName
	if name == "" {
		name = shopper.Name
	}

	review, err := h.reviews.Create(r.Context(), service.ReviewInput{
		ProductID: id,
		UserEmail: shopper.Email,
		UserName:  name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req models.ReviewUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.reviews.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.reviews.ForUser(r.Context(), shopper.Email))
}
