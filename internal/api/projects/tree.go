package projects

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/models"
)

type TreeNodeRequest struct {
	ParentID string `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // file or folder
}

type TreeMoveRequest struct {
	NewParentID string `json:"new_parent_id,omitempty"`
	Index       int    `json:"index"`
}

type TreeRenameRequest struct {
	Name string `json:"name"`
}

// GetTree returns the project's virtual file tree.
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.store.GetProject(id)
	if err != nil {
		storeError(w, "get tree", err)
		return
	}
	respond.OK(w, p.FileTree)
}

// ListTreeFolders returns every folder with its full path, for export
// target pickers.
func (h *Handler) ListTreeFolders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	folders, err := h.store.ListTreeFolders(id)
	if err != nil {
		storeError(w, "list tree folders", err)
		return
	}
	respond.OK(w, folders)
}

// AddTreeNode creates a file or folder node. An empty parent id targets
// the tree root.
func (h *Handler) AddTreeNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req TreeNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("node name is required"))
		return
	}

	node, err := h.store.AddTreeNode(id, req.ParentID, strings.TrimSpace(req.Name), models.ParseNodeKind(req.Kind))
	if err != nil {
		storeError(w, "add tree node", err)
		return
	}
	respond.Created(w, node)
}

// MoveTreeNode reparents a node at the given sibling index.
func (h *Handler) MoveTreeNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nodeID := chi.URLParam(r, "nodeID")
	var req TreeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if err := h.store.MoveTreeNode(id, nodeID, req.NewParentID, req.Index); err != nil {
		storeError(w, "move tree node", err)
		return
	}
	respond.NoContent(w)
}

// RenameTreeNode renames a node. Protected names are rejected.
func (h *Handler) RenameTreeNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nodeID := chi.URLParam(r, "nodeID")
	var req TreeRenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.JSONError(w, respond.NewValidationError("node name is required"))
		return
	}

	if err := h.store.RenameTreeNode(id, nodeID, strings.TrimSpace(req.Name)); err != nil {
		storeError(w, "rename tree node", err)
		return
	}
	respond.NoContent(w)
}

// DeleteTreeNode removes a node and its subtree. Protected nodes are
// rejected.
func (h *Handler) DeleteTreeNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nodeID := chi.URLParam(r, "nodeID")
	if err := h.store.RemoveTreeNode(id, nodeID); err != nil {
		storeError(w, "delete tree node", err)
		return
	}
	respond.NoContent(w)
}

// SyncTree re-syncs resource entries into the tree's conventional
// folders.
func (h *Handler) SyncTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.SyncTree(id); err != nil {
		storeError(w, "sync tree", err)
		return
	}
	respond.NoContent(w)
}
