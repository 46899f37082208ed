// Package projects exposes the guide store's project and template
// lifecycle over HTTP.
package projects

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

// Handler handles project lifecycle endpoints.
type Handler struct {
	store *guide.Store
}

// NewHandler creates a new projects handler.
func NewHandler(store *guide.Store) *Handler {
	return &Handler{store: store}
}

// SummaryResponse is the list-view shape of a project or template.
type SummaryResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	Description     string `json:"description,omitempty"`
	CoverImage      string `json:"cover_image,omitempty"`
	IsBookmarkGuide bool   `json:"is_bookmark_guide"`
	Components      int    `json:"components"`
	CreatedAt       string `json:"created_at"`
}

// Request types
type CreateRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	CoverImage   string   `json:"cover_image,omitempty"`
	Participants []string `json:"participants,omitempty"`
	CopyFrom     []string `json:"copy_from,omitempty"`
}

type FromTemplateRequest struct {
	SourceID     string   `json:"source_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	CoverImage   string   `json:"cover_image,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

type MetaRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	CoverImage      *string   `json:"cover_image,omitempty"`
	Participants    *[]string `json:"participants,omitempty"`
	IsBookmarkGuide *bool     `json:"is_bookmark_guide,omitempty"`
}

type SaveAsTemplateRequest struct {
	Name string `json:"name"`
}

// List returns all projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all := h.store.ListProjects()
	resp := make([]*SummaryResponse, len(all))
	for i, p := range all {
		resp[i] = toSummary(p)
	}
	respond.OK(w, resp)
}

// ListTemplates returns the system templates (with overrides applied)
// and every user template.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	all := h.store.ListTemplates()
	resp := make([]*SummaryResponse, len(all))
	for i, p := range all {
		resp[i] = toSummary(p)
	}
	respond.OK(w, resp)
}

// Create creates a new project, optionally copying content from
// existing guides.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if err := ValidateName(req.Name); err != nil {
		respond.JSONError(w, respond.NewValidationError(err.Error()))
		return
	}

	p, err := h.store.CreateProject(strings.TrimSpace(req.Name), guide.CreateOptions{
		Description:      req.Description,
		CoverImage:       req.CoverImage,
		Participants:     req.Participants,
		CopyFromGuideIDs: req.CopyFrom,
	})
	if err != nil {
		storeError(w, "create project", err)
		return
	}

	log.Printf("project created: %s (%s)", p.Name, p.ID)
	respond.Created(w, p)
}

// CreateFromTemplate creates a new project as a deep copy of a
// template.
func (h *Handler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	var req FromTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if req.SourceID == "" {
		respond.JSONError(w, respond.NewValidationError("source_id is required"))
		return
	}
	if err := ValidateName(req.Name); err != nil {
		respond.JSONError(w, respond.NewValidationError(err.Error()))
		return
	}

	p, err := h.store.CreateProjectFromTemplate(req.SourceID, strings.TrimSpace(req.Name), guide.CreateOptions{
		Description:  req.Description,
		CoverImage:   req.CoverImage,
		Participants: req.Participants,
	})
	if err != nil {
		storeError(w, "create project from template", err)
		return
	}

	log.Printf("project created from %s: %s (%s)", req.SourceID, p.Name, p.ID)
	respond.Created(w, p)
}

// GetByID returns a full project by id. Reserved template ids resolve
// to the template view.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.store.GetProject(id)
	if err != nil {
		storeError(w, "get project", err)
		return
	}
	respond.OK(w, p)
}

// UpdateMeta applies a partial metadata update.
func (h *Handler) UpdateMeta(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req MetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			respond.JSONError(w, respond.NewValidationError(err.Error()))
			return
		}
	}

	err := h.store.UpdateProjectMeta(id, guide.MetaUpdate{
		Name:            req.Name,
		Description:     req.Description,
		CoverImage:      req.CoverImage,
		Participants:    req.Participants,
		IsBookmarkGuide: req.IsBookmarkGuide,
	})
	if err != nil {
		storeError(w, "update project meta", err)
		return
	}

	p, err := h.store.GetProject(id)
	if err != nil {
		storeError(w, "update project meta", err)
		return
	}
	respond.OK(w, p)
}

// Delete removes a project. Reserved template ids are rejected.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteProject(id); err != nil {
		storeError(w, "delete project", err)
		return
	}
	log.Printf("project deleted: %s", id)
	respond.NoContent(w)
}

// SaveAsTemplate snapshots a project into a new user template.
func (h *Handler) SaveAsTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req SaveAsTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if err := ValidateName(req.Name); err != nil {
		respond.JSONError(w, respond.NewValidationError(err.Error()))
		return
	}

	tpl, err := h.store.SaveProjectAsTemplate(id, strings.TrimSpace(req.Name))
	if err != nil {
		storeError(w, "save project as template", err)
		return
	}

	log.Printf("template created from project %s: %s (%s)", id, tpl.Name, tpl.ID)
	respond.Created(w, tpl)
}

// ResetTemplate drops the editable override and meta override of a
// system template, restoring the pristine seed.
func (h *Handler) ResetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !models.IsTemplateKind(id) {
		respond.JSONError(w, respond.NewBadRequest("not a system template id"))
		return
	}
	if err := h.store.ResetEditableTemplate(models.TemplateKind(id)); err != nil {
		storeError(w, "reset template", err)
		return
	}
	log.Printf("template reset: %s", id)
	respond.NoContent(w)
}

// ExportBackup returns the full-state backup document.
func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, h.store.ExportBackup())
}

// RestoreBackup merges a backup document into the store: projects
// replace by id, new ones append.
func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var payload models.BackupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	restored, err := h.store.RestoreBackup(&payload)
	if err != nil {
		storeError(w, "restore backup", err)
		return
	}

	log.Printf("backup restored: %d projects", restored)
	respond.OK(w, map[string]int{"restored": restored})
}

func toSummary(p *models.Project) *SummaryResponse {
	return &SummaryResponse{
		ID:              p.ID,
		Name:            p.Name,
		Kind:            string(p.Kind),
		Description:     p.Description,
		CoverImage:      p.CoverImage,
		IsBookmarkGuide: p.IsBookmarkGuide,
		Components:      len(p.Components),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
