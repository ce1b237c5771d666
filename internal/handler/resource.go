package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inventario-api/internal/model"
	"inventario-api/pkg/apierror"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// Store is the CRUD contract the binder translates HTTP traffic into;
// *repository.Repository satisfies it.
type Store[T any, P any, ID comparable] interface {
	Get(ctx context.Context, id ID) (T, error)
	List(ctx context.Context, skip int, limit int) ([]T, error)
	Create(ctx context.Context, candidate T) (T, error)
	Update(ctx context.Context, id ID, patch P) (T, error)
	Delete(ctx context.Context, id ID) (T, error)
}

// Resource generates the five CRUD endpoints for one entity type. The
// optional prepareCreate hook runs structural validation (and any field
// shaping, like password hashing) before the candidate reaches the store.
type Resource[T any, P any, ID comparable] struct {
	store         Store[T, P, ID]
	singular      string
	plural        string
	parseID       func(string) (ID, error)
	prepareCreate func(*T) error
}

func NewResource[T any, P any, ID comparable](
	store Store[T, P, ID],
	singular string,
	plural string,
	parseID func(string) (ID, error),
) *Resource[T, P, ID] {
	return &Resource[T, P, ID]{
		store:    store,
		singular: singular,
		plural:   plural,
		parseID:  parseID,
	}
}

// WithPrepareCreate installs the pre-store hook and returns the resource for
// chaining at the mount site.
func (res *Resource[T, P, ID]) WithPrepareCreate(hook func(*T) error) *Resource[T, P, ID] {
	res.prepareCreate = hook
	return res
}

// Mount registers the five routes under the given router, mirroring the
// singular/plural URL scheme of the API: POST /<singular>, GET /<plural>,
// GET|PUT|DELETE /<singular>/{id}.
func (res *Resource[T, P, ID]) Mount(r chi.Router) {
	res.MountWithCreate(r, res.Create)
}

// MountWithCreate mounts the routes with a caller-supplied create handler,
// for resources whose create payload differs from the stored record.
func (res *Resource[T, P, ID]) MountWithCreate(r chi.Router, create http.HandlerFunc) {
	r.Post("/"+res.singular, create)
	r.Get("/"+res.plural, res.List)
	r.Get("/"+res.singular+"/{id}", res.Get)
	r.Put("/"+res.singular+"/{id}", res.Update)
	r.Delete("/"+res.singular+"/{id}", res.Delete)
}

func (res *Resource[T, P, ID]) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var candidate T
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", err.Error()))
		return
	}

	if res.prepareCreate != nil {
		if err := res.prepareCreate(&candidate); err != nil {
			writeError(w, err)
			return
		}
	}

	created, err := res.store.Create(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}

func (res *Resource[T, P, ID]) List(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", defaultSkip)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	entities, err := res.store.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entities, &model.Meta{Skip: skip, Limit: limit, Count: len(entities)})
}

func (res *Resource[T, P, ID]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := res.pathID(w, r)
	if !ok {
		return
	}

	entity, err := res.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entity, nil)
}

func (res *Resource[T, P, ID]) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, ok := res.pathID(w, r)
	if !ok {
		return
	}

	var patch P
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", err.Error()))
		return
	}

	updated, err := res.store.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, updated, nil)
}

func (res *Resource[T, P, ID]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := res.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := res.store.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	// The pre-deletion snapshot doubles as a deletion receipt.
	writeSuccess(w, http.StatusOK, deleted, nil)
}

func (res *Resource[T, P, ID]) pathID(w http.ResponseWriter, r *http.Request) (ID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := res.parseID(raw)
	if err != nil {
		var zero ID
		writeError(w, apierror.BadRequest("invalid "+res.singular+" id", raw))
		return zero, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.BadRequest(key+" must be an integer", raw)
	}

	return v, nil
}

// ID parsers for the two key shapes the schema uses.

func IntID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func SmallID(raw string) (int16, error) {
	v, err := strconv.ParseInt(raw, 10, 16)
	return int16(v), err
}

func StringID(raw string) (string, error) {
	if raw == "" {
		return "", apierror.BadRequest("id must not be empty", "")
	}
	return raw, nil
}
