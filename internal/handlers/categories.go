package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]categoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	category, err := h.categories.Create(r.Context(), customerID(r), req.Name, req.Description)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCategoryDTO(category))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	category, err := h.categories.Update(r.Context(), customerID(r), chi.URLParam(r, "id"), req.Name, req.Description)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategoryDTO(category))
}

func (h *Handler) DeleteCategories(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := decodeJSON(r, &ids); err != nil {
		respondServiceError(w, r, err)
		return
	}
	deleted, err := h.categories.Delete(r.Context(), customerID(r), ids)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// ReseedCategories copies template categories the caller is missing.
func (h *Handler) ReseedCategories(w http.ResponseWriter, r *http.Request) {
	added, err := h.categories.Reseed(r.Context(), customerID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"added": added})
}

func (h *Handler) InitTemplateCategories(w http.ResponseWriter, r *http.Request) {
	added, err := h.categories.InitTemplateCatalog(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"added": added})
}
