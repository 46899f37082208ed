package projects

import (
	"errors"
	"log"
	"net/http"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/filetree"
	"github.com/good-yellow-bee/liveguide/internal/guide"
	"github.com/good-yellow-bee/liveguide/internal/resources"
	"github.com/good-yellow-bee/liveguide/internal/storage"
)

// storeError maps guide store errors onto the response envelope.
func storeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, guide.ErrProjectNotFound),
		errors.Is(err, guide.ErrComponentNotFound),
		errors.Is(err, guide.ErrCategoryNotFound),
		errors.Is(err, resources.ErrNotFound),
		errors.Is(err, filetree.ErrNodeNotFound):
		respond.JSONError(w, respond.NewNotFound(err.Error()))
	case errors.Is(err, guide.ErrCategoryExists):
		respond.JSONError(w, respond.NewConflict(err.Error()))
	case errors.Is(err, guide.ErrReservedID),
		errors.Is(err, guide.ErrBackupVersion),
		errors.Is(err, resources.ErrDerivedReadOnly),
		errors.Is(err, filetree.ErrProtected),
		errors.Is(err, filetree.ErrCyclicMove),
		errors.Is(err, filetree.ErrNotFolder):
		respond.JSONError(w, respond.NewBadRequest(err.Error()))
	case errors.Is(err, storage.ErrQuotaExceeded):
		respond.JSONError(w, respond.ErrQuotaExceeded)
	default:
		log.Printf("%s error: %v", op, err)
		respond.JSONError(w, respond.ErrInternalServer)
	}
}
