package handlers

import (
	"net/http"
	"strconv"

	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.GetAll)
	r.Get("/products/featured", h.GetFeatured)
	r.Get("/products/{id}", h.GetByID)
	r.Get("/products/{id}/related", h.GetRelated)
	r.Get("/categories/{category}/products", h.GetByCategory)
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, h.products.List(r.Context(), filter))
}

func parseProductFilter(r *http.Request) (repository.ProductFilter, error) {
	q := r.URL.Query()
	f := repository.ProductFilter{
		Categories: q["category"],
		Search:     q.Get("search"),
		Sizes:      q["size"],
		Colors:     q["color"],
		SortBy:     repository.SortBy(q.Get("sortBy")),
	}

	for name, dst := range map[string]**float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, &paramError{name: name, value: raw}
		}
		*dst = &v
	}

	if raw := q.Get("sale"); raw != "" {
		sale, err := strconv.ParseBool(raw)
		if err != nil {
			return f, &paramError{name: "sale", value: raw}
		}
		f.Sale = sale
	}

	return f, nil
}

type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + " " + strconv.Quote(e.value)
}

func (h *ProductHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", repository.DefaultFeaturedLimit)
	writeJSON(w, http.StatusOK, h.products.Featured(r.Context(), limit))
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	limit := queryInt(r, "limit", repository.DefaultRelatedLimit)
	writeJSON(w, http.StatusOK, h.products.Related(r.Context(), id, limit))
}

func (h *ProductHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "category is required", nil)
		return
	}

	writeJSON(w, http.StatusOK, h.products.ByCategory(r.Context(), category))
}
