package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"inventario-api/internal/model"
	"inventario-api/internal/service"
	"inventario-api/pkg/apierror"
)

// UsuarioHandler owns the registration path: usuarios are created from a
// plaintext-password payload that is validated and hashed before it reaches
// the store, so the generic create handler does not apply.
type UsuarioHandler struct {
	store Store[model.Usuario, model.UsuarioPatch, int64]
}

func NewUsuarioHandler(store Store[model.Usuario, model.UsuarioPatch, int64]) *UsuarioHandler {
	return &UsuarioHandler{store: store}
}

func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.UsuarioCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", err.Error()))
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || len(payload.Username) > 50 {
		writeError(w, apierror.BadRequest("username must be 1-50 characters", "username"))
		return
	}
	if len(payload.Password) < 8 || len(payload.Password) > 120 {
		writeError(w, apierror.BadRequest("password must be 8-120 characters", "password"))
		return
	}

	hash, err := service.HashPassword(payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.store.Create(r.Context(), model.Usuario{
		Username:   payload.Username,
		Password:   hash,
		ContactoID: payload.ContactoID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}
