// Package publish exposes the read-side surfaces of a guide: assembled
// preview documents, export bundles, and share tokens.
package publish

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/export"
	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/metrics"
	"github.com/good-yellow-bee/liveguide/internal/models"
	"github.com/good-yellow-bee/liveguide/internal/preview"
	"github.com/good-yellow-bee/liveguide/internal/share"
)

// Handler handles preview, export, and share endpoints.
type Handler struct {
	store *guide.Store
}

// NewHandler creates a new publish handler.
func NewHandler(store *guide.Store) *Handler {
	return &Handler{store: store}
}

// PreviewRequest selects the component to render. Draft overrides, when
// present, replace the stored fragment so unsaved editor state previews
// without a write.
type PreviewRequest struct {
	ComponentID string  `json:"component_id"`
	HTML        *string `json:"html,omitempty"`
	CSS         *string `json:"css,omitempty"`
	JS          *string `json:"js,omitempty"`
}

// PreviewResponse carries the assembled sandbox document and the
// constants the host page needs to mount it.
type PreviewResponse struct {
	Document          string `json:"document"`
	RootSelector      string `json:"root_selector"`
	HeightMessageType string `json:"height_message_type"`
}

// Preview assembles the complete iframe document for one component.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	p, err := h.store.GetProject(id)
	if err != nil {
		h.lookupError(w, "preview", err)
		return
	}

	in := preview.DocumentInput{
		CommonCSS: preview.MergeCommonCSS(p.CommonFiles),
		CommonJS:  preview.MergeCommonJS(p.CommonFiles),
		Assets:    assetMap(p.CommonAssets),
	}
	if req.ComponentID != "" {
		c := p.FindComponent(req.ComponentID)
		if c == nil {
			respond.JSONError(w, respond.NewNotFound("component not found"))
			return
		}
		in.ComponentHTML = c.HTML
		in.ComponentCSS = c.CSS
		in.ComponentJS = c.JS
	}
	if req.HTML != nil {
		in.ComponentHTML = *req.HTML
	}
	if req.CSS != nil {
		in.ComponentCSS = *req.CSS
	}
	if req.JS != nil {
		in.ComponentJS = *req.JS
	}

	metrics.PreviewsBuilt.Inc()
	respond.OK(w, &PreviewResponse{
		Document:          preview.BuildDocument(in),
		RootSelector:      preview.RootSelector,
		HeightMessageType: preview.HeightMessageType,
	})
}

// ExportArchive streams the guide as a ZIP laid out along the virtual
// file tree.
func (h *Handler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.store.GetProject(id)
	if err != nil {
		h.lookupError(w, "export archive", err)
		return
	}

	files := export.Archive(p)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Name+".zip"))
	if err := export.WriteZip(w, files); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("export archive %s: %v", id, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues("archive").Inc()
}

// ExportFiles returns the flat export set as a path-to-content map.
// Contents are base64 encoded so binary assets survive the JSON ride.
func (h *Handler) ExportFiles(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.store.GetProject(id)
	if err != nil {
		h.lookupError(w, "export files", err)
		return
	}

	files := export.Files(p)
	encoded := make(map[string]string, len(files))
	for path, content := range files {
		encoded[path] = base64.StdEncoding.EncodeToString(content)
	}

	metrics.ExportsTotal.WithLabelValues("flat").Inc()
	respond.OK(w, encoded)
}

// ShareRequest names the project to encode into a share token.
type ShareRequest struct {
	ProjectID string `json:"project_id"`
}

// ShareResponse carries the encoded token.
type ShareResponse struct {
	Token string `json:"token"`
}

// EncodeShare builds a share token from a project's shareable slice.
func (h *Handler) EncodeShare(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if req.ProjectID == "" {
		respond.JSONError(w, respond.NewBadRequest("project_id is required"))
		return
	}

	p, err := h.store.GetProject(req.ProjectID)
	if err != nil {
		h.lookupError(w, "encode share", err)
		return
	}

	token, err := share.Encode(share.Input{
		Components:   p.Components,
		CommonFiles:  p.CommonFiles,
		CommonAssets: p.CommonAssets,
		ProjectName:  p.Name,
	})
	if err != nil {
		metrics.ShareTokensTotal.WithLabelValues("encode", "error").Inc()
		log.Printf("encode share %s: %v", req.ProjectID, err)
		respond.JSONError(w, respond.ErrInternalServer)
		return
	}

	metrics.ShareTokensTotal.WithLabelValues("encode", "ok").Inc()
	respond.OK(w, &ShareResponse{Token: token})
}

// DecodeShare parses a share token back into its payload.
func (h *Handler) DecodeShare(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	payload, err := share.Decode(token)
	if err != nil {
		metrics.ShareTokensTotal.WithLabelValues("decode", "invalid").Inc()
		respond.JSONError(w, respond.NewBadRequest("invalid or expired link"))
		return
	}

	metrics.ShareTokensTotal.WithLabelValues("decode", "ok").Inc()
	respond.OK(w, payload)
}

func (h *Handler) lookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, guide.ErrProjectNotFound) {
		respond.JSONError(w, respond.NewNotFound("project not found"))
		return
	}
	log.Printf("%s error: %v", op, err)
	respond.JSONError(w, respond.ErrInternalServer)
}

func assetMap(assets []*models.CommonAsset) map[string]string {
	if len(assets) == 0 {
		return nil
	}
	out := make(map[string]string, len(assets))
	for _, a := range assets {
		out[a.Name] = a.DataURI
	}
	return out
}
