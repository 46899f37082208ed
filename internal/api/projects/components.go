package projects

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/guide"
)

type ComponentRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	HTML        string `json:"html,omitempty"`
	CSS         string `json:"css,omitempty"`
	JS          string `json:"js,omitempty"`
}

type ComponentUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	HTML        *string `json:"html,omitempty"`
	CSS         *string `json:"css,omitempty"`
	JS          *string `json:"js,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

// AddComponent appends a component to the project catalog.
func (h *Handler) AddComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("component name is required"))
		return
	}

	c, err := h.store.AddComponent(id, guide.ComponentInput{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		HTML:        req.HTML,
		CSS:         req.CSS,
		JS:          req.JS,
	})
	if err != nil {
		storeError(w, "add component", err)
		return
	}
	respond.Created(w, c)
}

// UpdateComponent applies a partial component update.
func (h *Handler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	componentID := chi.URLParam(r, "componentID")
	var req ComponentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	c, err := h.store.UpdateComponent(id, componentID, guide.ComponentUpdate{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		HTML:        req.HTML,
		CSS:         req.CSS,
		JS:          req.JS,
	})
	if err != nil {
		storeError(w, "update component", err)
		return
	}
	respond.OK(w, c)
}

// DeleteComponent removes a component and purges its derived artifacts.
func (h *Handler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	componentID := chi.URLParam(r, "componentID")
	if err := h.store.RemoveComponent(id, componentID); err != nil {
		storeError(w, "delete component", err)
		return
	}
	respond.NoContent(w)
}

// AddCategory adds a category to the project's category set.
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("category name is required"))
		return
	}

	if err := h.store.AddCategory(id, strings.TrimSpace(req.Name)); err != nil {
		storeError(w, "add category", err)
		return
	}
	respond.NoContent(w)
}

// RenameCategory renames a category, carrying its components along.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from := chi.URLParam(r, "name")
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("category name is required"))
		return
	}

	if err := h.store.RenameCategory(id, from, strings.TrimSpace(req.Name)); err != nil {
		storeError(w, "rename category", err)
		return
	}
	respond.NoContent(w)
}

// DeleteCategory removes a category. The last category is replaced by
// the default set, and orphaned components move to the first remaining
// category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")
	if err := h.store.RemoveCategory(id, name); err != nil {
		storeError(w, "delete category", err)
		return
	}
	respond.NoContent(w)
}
