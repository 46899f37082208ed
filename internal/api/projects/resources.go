package projects

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

type CommonFileRequest struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

type CommonFileUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Content *string `json:"content,omitempty"`
}

type CommonAssetRequest struct {
	Name           string `json:"name"`
	DataURI        string `json:"data_uri"`
	ExportFolderID string `json:"export_folder_id,omitempty"`
}

type CommonAssetUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	DataURI        *string `json:"data_uri,omitempty"`
	ExportFolderID *string `json:"export_folder_id,omitempty"`
}

// AddCommonFile creates a shared file. The derived names component.css
// and component.js are reserved.
func (h *Handler) AddCommonFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req CommonFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("file name is required"))
		return
	}

	kind := models.ParseCommonFileKind(req.Kind)
	f, err := h.store.AddCommonFile(id, strings.TrimSpace(req.Name), req.Content, kind)
	if err != nil {
		storeError(w, "add common file", err)
		return
	}
	respond.Created(w, f)
}

// UpdateCommonFile applies a partial update to a shared file.
func (h *Handler) UpdateCommonFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fileID := chi.URLParam(r, "fileID")
	var req CommonFileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if err := h.store.UpdateCommonFile(id, fileID, req.Name, req.Content); err != nil {
		storeError(w, "update common file", err)
		return
	}
	respond.NoContent(w)
}

// DeleteCommonFile removes a shared file.
func (h *Handler) DeleteCommonFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fileID := chi.URLParam(r, "fileID")
	if err := h.store.RemoveCommonFile(id, fileID); err != nil {
		storeError(w, "delete common file", err)
		return
	}
	respond.NoContent(w)
}

// AddCommonAsset uploads a binary asset as a data URI.
func (h *Handler) AddCommonAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req CommonAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.DataURI == "" {
		respond.JSONError(w, respond.NewValidationError("asset name and data_uri are required"))
		return
	}

	a, err := h.store.AddCommonAsset(id, strings.TrimSpace(req.Name), req.DataURI, req.ExportFolderID)
	if err != nil {
		storeError(w, "add common asset", err)
		return
	}
	respond.Created(w, a)
}

// UpdateCommonAsset applies a partial update to an asset.
func (h *Handler) UpdateCommonAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	assetID := chi.URLParam(r, "assetID")
	var req CommonAssetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if err := h.store.UpdateCommonAsset(id, assetID, req.Name, req.DataURI, req.ExportFolderID); err != nil {
		storeError(w, "update common asset", err)
		return
	}
	respond.NoContent(w)
}

// DeleteCommonAsset removes an asset.
func (h *Handler) DeleteCommonAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	assetID := chi.URLParam(r, "assetID")
	if err := h.store.RemoveCommonAsset(id, assetID); err != nil {
		storeError(w, "delete common asset", err)
		return
	}
	respond.NoContent(w)
}
