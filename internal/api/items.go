package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/erazemk/storeapi/internal/model"
	"github.com/erazemk/storeapi/internal/serializer"
	"github.com/erazemk/storeapi/internal/store"
)

// ItemRepository is the persistence the item endpoints need.
type ItemRepository interface {
	serializer.Finder
	Insert(ctx context.Context, item model.Item) (*model.Item, error)
	Get(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, item model.Item) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
}

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Items     ItemRepository
	Validator *serializer.Validator
	Log       *zap.Logger
}

// List handles GET /list/.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.List(r.Context())
	if err != nil {
		h.Log.Error("listing items", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		jsonError(h.Log, w, http.StatusInternalServerError, "failed to list items")
		return
	}
	jsonResponse(h.Log, w, http.StatusOK, serializer.SerializeAll(items))
}

// Create handles POST /.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	item, err := h.Validator.Build(r.Context(), in, nil)
	if err != nil {
		h.writeError(w, r, "validating item", err)
		return
	}

	created, err := h.Items.Insert(r.Context(), *item)
	if err != nil {
		h.writeError(w, r, "creating item", err)
		return
	}

	jsonResponse(h.Log, w, http.StatusOK, serializer.Serialize(*created))
}

// Get handles GET /{id}/.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	jsonResponse(h.Log, w, http.StatusOK, serializer.Serialize(*item))
}

// Update handles PUT /{id}/.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.lookup(w, r)
	if !ok {
		return
	}

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	item, err := h.Validator.Build(r.Context(), in, existing)
	if err != nil {
		h.writeError(w, r, "validating item", err)
		return
	}

	updated, err := h.Items.Update(r.Context(), *item)
	if err != nil {
		h.writeError(w, r, "updating item", err)
		return
	}

	jsonResponse(h.Log, w, http.StatusOK, serializer.Serialize(*updated))
}

// Delete handles DELETE /{id}/.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.Items.Delete(r.Context(), item.ID); err != nil {
		h.writeError(w, r, "deleting item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path variable to a stored item. Every failure,
// including unexpected store errors, is answered with 404.
func (h *ItemsHandler) lookup(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		jsonError(h.Log, w, http.StatusNotFound, store.ErrNotFound.Error())
		return nil, false
	}

	item, err := h.Items.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.Log.Error("looking up item",
				zap.Int64("id", id),
				zap.Error(err),
				zap.String("request_id", GetRequestID(r.Context())),
			)
		}
		jsonError(h.Log, w, http.StatusNotFound, store.ErrNotFound.Error())
		return nil, false
	}
	return item, true
}

// decodeInput reads the request body. An empty body decodes to an empty input
// so that every field is reported as required.
func (h *ItemsHandler) decodeInput(w http.ResponseWriter, r *http.Request) (serializer.ItemInput, bool) {
	var in serializer.ItemInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		jsonError(h.Log, w, http.StatusBadRequest, "invalid request body")
		return in, false
	}
	return in, true
}

// writeError maps a validation or store error to a response.
func (h *ItemsHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var violations serializer.Violations
	var unique *store.UniqueViolationError

	switch {
	case errors.As(err, &violations):
		jsonResponse(h.Log, w, http.StatusBadRequest, violations)
	case errors.As(err, &unique):
		jsonResponse(h.Log, w, http.StatusBadRequest, serializer.DuplicateViolation(unique.Field))
	case errors.Is(err, store.ErrNotFound):
		jsonError(h.Log, w, http.StatusNotFound, store.ErrNotFound.Error())
	default:
		h.Log.Error(op, zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		jsonError(h.Log, w, http.StatusInternalServerError, "failed "+op)
	}
}
