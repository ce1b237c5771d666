//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"inventario-api/internal/config"
	"inventario-api/internal/handler"
	"inventario-api/internal/metrics"
	"inventario-api/internal/middleware"
	"inventario-api/internal/model"
	"inventario-api/internal/repository"
	"inventario-api/internal/router"
	"inventario-api/internal/service"
	"inventario-api/internal/storage"
	"inventario-api/pkg/apierror"
)

// The integration suite runs the real router, middleware chain, and auth
// stack against in-memory stores that mirror the repository's semantics.

type testStores struct {
	bodegas   *storage.MemStore[model.BodegaInventario, model.BodegaInventarioPatch, int16]
	estados   *storage.MemStore[model.EstadoElementoInventario, model.EstadoElementoInventarioPatch, int16]
	elementos *storage.MemStore[model.ElementoInventario, model.ElementoInventarioPatch, int64]
	usuarios  *storage.MemStore[model.Usuario, model.UsuarioPatch, int64]
}

type userIndex struct {
	store *storage.MemStore[model.Usuario, model.UsuarioPatch, int64]
}

func (x userIndex) FindByUsername(_ context.Context, username string) (model.Usuario, error) {
	u, ok := x.store.Find(func(other *model.Usuario) bool { return other.Username == username })
	if !ok {
		return model.Usuario{}, apierror.NotFound("usuario", username)
	}
	return u, nil
}

func newStores(t *testing.T) *testStores {
	t.Helper()

	s := &testStores{
		bodegas:   storage.NewMemStore[model.BodegaInventario, model.BodegaInventarioPatch, int16]("bodega_inventario"),
		estados:   storage.NewMemStore[model.EstadoElementoInventario, model.EstadoElementoInventarioPatch, int16]("estado_elemento_inventario"),
		elementos: storage.NewMemStore[model.ElementoInventario, model.ElementoInventarioPatch, int64]("elemento_inventario"),
		usuarios:  storage.NewMemStore[model.Usuario, model.UsuarioPatch, int64]("usuario"),
	}

	s.bodegas.KeyOf = func(e *model.BodegaInventario) int16 { return e.ID }
	s.bodegas.AssignKey = func(e *model.BodegaInventario, seq int64) { e.ID = int16(seq) }
	s.bodegas.Apply = repository.Bodegas().Apply

	s.estados.KeyOf = func(e *model.EstadoElementoInventario) int16 { return e.ID }
	s.estados.AssignKey = func(e *model.EstadoElementoInventario, seq int64) { e.ID = int16(seq) }
	s.estados.Apply = repository.Estados().Apply

	s.elementos.KeyOf = func(e *model.ElementoInventario) int64 { return e.ID }
	s.elementos.AssignKey = func(e *model.ElementoInventario, seq int64) { e.ID = seq }
	s.elementos.Prepare = func(e *model.ElementoInventario) {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
	}
	s.elementos.Apply = repository.Elementos().Apply
	s.elementos.CheckRefs = func(e *model.ElementoInventario) error {
		if e.BodegaInventarioID != nil && !s.bodegas.Has(*e.BodegaInventarioID) {
			return apierror.Conflict("elemento_inventario references a missing related record", "bodega_inventario_id")
		}
		if !s.estados.Has(e.EstadoElementoID) {
			return apierror.Conflict("elemento_inventario references a missing related record", "estado_elemento_id")
		}
		return nil
	}

	s.usuarios.KeyOf = func(u *model.Usuario) int64 { return u.ID }
	s.usuarios.AssignKey = func(u *model.Usuario, seq int64) { u.ID = seq }
	s.usuarios.Apply = repository.Usuarios().Apply
	s.usuarios.CheckRefs = func(u *model.Usuario) error {
		existing, taken := s.usuarios.Find(func(other *model.Usuario) bool { return other.Username == u.Username })
		if taken && existing.ID != u.ID {
			return apierror.Conflict("usuario violates a unique constraint", "username")
		}
		return nil
	}

	ctx := context.Background()
	_, err := s.estados.Create(ctx, model.EstadoElementoInventario{Nombre: "activo"})
	require.NoError(t, err)

	hash, err := service.HashPassword("admin123")
	require.NoError(t, err)
	_, err = s.usuarios.Create(ctx, model.Usuario{Username: "admin", Password: hash})
	require.NoError(t, err)

	return s
}

func newTestServer(t *testing.T) (*httptest.Server, *testStores) {
	t.Helper()

	stores := newStores(t)

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "integration-test-secret",
		JWTAlgorithm:     "HS256",
		JWTAccessTTL:     30 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userIndex{stores.usuarios})
	require.NoError(t, err)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	bodegas := handler.NewResource(stores.bodegas, "bodega_inventario", "bodegas_inventario", handler.SmallID)
	estados := handler.NewResource(stores.estados, "estado_elemento_inventario", "estados_elemento_inventario", handler.SmallID)
	elementos := handler.NewResource(stores.elementos, "elemento_inventario", "elementos_inventario", handler.IntID)
	usuarios := handler.NewResource(stores.usuarios, "usuario", "usuarios", handler.IntID)
	usuarioHandler := handler.NewUsuarioHandler(stores.usuarios)

	h := router.New(cfg, authMiddleware, authHandler, collector, registry, func(inv chi.Router) {
		bodegas.Mount(inv)
		estados.Mount(inv)
		elementos.Mount(inv)
		usuarios.MountWithCreate(inv, usuarioHandler.Create)
	})

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return server, stores
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
	Meta    *model.Meta     `json:"meta"`
}

func readEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func login(t *testing.T, server *httptest.Server, username string, password string) *http.Response {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	resp, err := http.Post(server.URL+"/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, server *httptest.Server, username string, password string) string {
	t.Helper()

	resp := login(t, server, username, password)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token model.Token
	require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &token))
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func doAuthed(t *testing.T, server *httptest.Server, token string, method string, path string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPublicSurface(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("root", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"message":"API de Inventarios"}`, string(body))
	})

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, string(body), "inventario_http_requests_total")
	})
}

func TestAuthFlow(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		resp := login(t, server, "admin", "wrong")
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		resp := login(t, server, "ghost", "whatever1")
		env := readEnvelope(t, resp)
		require.Equal(t, "incorrect username or password", env.Error.Message)
	})

	t.Run("protected routes reject missing tokens", func(t *testing.T) {
		resp := doAuthed(t, server, "", http.MethodGet, "/inventario/elementos_inventario", "")
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("protected routes reject forged tokens", func(t *testing.T) {
		resp := doAuthed(t, server, "not.a.token", http.MethodGet, "/inventario/elementos_inventario", "")
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("a fresh token opens the inventory", func(t *testing.T) {
		token := loginToken(t, server, "admin", "admin123")

		resp := doAuthed(t, server, token, http.MethodGet, "/inventario/elementos_inventario", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		env := readEnvelope(t, resp)
		require.True(t, env.Success)
		require.Equal(t, 0, env.Meta.Count)

		var items []model.ElementoInventario
		require.NoError(t, json.Unmarshal(env.Data, &items))
		require.Empty(t, items)
	})
}

func TestRegistrationFlow(t *testing.T) {
	server, _ := newTestServer(t)
	adminToken := loginToken(t, server, "admin", "admin123")

	resp := doAuthed(t, server, adminToken, http.MethodPost, "/inventario/usuario",
		`{"username":"alice","password":"longenough1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := readEnvelope(t, resp)
	require.NotContains(t, string(env.Data), "password")

	// The new account can log in on its own.
	aliceToken := loginToken(t, server, "alice", "longenough1")
	resp = doAuthed(t, server, aliceToken, http.MethodGet, "/inventario/usuarios", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, readEnvelope(t, resp).Meta.Count)

	// Duplicate usernames are refused.
	resp = doAuthed(t, server, adminToken, http.MethodPost, "/inventario/usuario",
		`{"username":"alice","password":"longenough1"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInventoryLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginToken(t, server, "admin", "admin123")

	resp := doAuthed(t, server, token, http.MethodPost, "/inventario/bodega_inventario",
		`{"nombre":"Central","ubicacion":"Cali"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var bodega model.BodegaInventario
	require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &bodega))
	require.Equal(t, int16(1), bodega.ID)

	resp = doAuthed(t, server, token, http.MethodPost, "/inventario/elemento_inventario",
		fmt.Sprintf(`{"nombre":"Tornillo","bodega_inventario_id":%d,"estado_elemento_id":1}`, bodega.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var elemento model.ElementoInventario
	require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &elemento))
	require.NotNil(t, elemento.BodegaInventarioID)
	require.False(t, elemento.CreatedAt.IsZero())

	t.Run("partial update touches only the named field", func(t *testing.T) {
		resp := doAuthed(t, server, token, http.MethodPut,
			fmt.Sprintf("/inventario/elemento_inventario/%d", elemento.ID), `{"nombre":"Tornillo M8"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated model.ElementoInventario
		require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &updated))
		require.Equal(t, "Tornillo M8", updated.Nombre)
		require.Equal(t, bodega.ID, *updated.BodegaInventarioID)
	})

	t.Run("missing references are refused", func(t *testing.T) {
		resp := doAuthed(t, server, token, http.MethodPost, "/inventario/elemento_inventario",
			`{"nombre":"Tuerca","bodega_inventario_id":99,"estado_elemento_id":1}`)
		resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("delete returns the final state as a receipt", func(t *testing.T) {
		resp := doAuthed(t, server, token, http.MethodDelete,
			fmt.Sprintf("/inventario/elemento_inventario/%d", elemento.ID), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var receipt model.ElementoInventario
		require.NoError(t, json.Unmarshal(readEnvelope(t, resp).Data, &receipt))
		require.Equal(t, "Tornillo M8", receipt.Nombre)

		resp = doAuthed(t, server, token, http.MethodGet,
			fmt.Sprintf("/inventario/elemento_inventario/%d", elemento.ID), "")
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListPagination(t *testing.T) {
	server, _ := newTestServer(t)
	token := loginToken(t, server, "admin", "admin123")

	for i := 1; i <= 5; i++ {
		resp := doAuthed(t, server, token, http.MethodPost, "/inventario/bodega_inventario",
			fmt.Sprintf(`{"nombre":"Bodega %d","ubicacion":"Cali"}`, i))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doAuthed(t, server, token, http.MethodGet, "/inventario/bodegas_inventario?skip=2&limit=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := readEnvelope(t, resp)
	require.Equal(t, 2, env.Meta.Skip)
	require.Equal(t, 2, env.Meta.Limit)
	require.Equal(t, 2, env.Meta.Count)

	var page []model.BodegaInventario
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Equal(t, "Bodega 3", page[0].Nombre)
	require.Equal(t, "Bodega 4", page[1].Nombre)

	resp = doAuthed(t, server, token, http.MethodGet, "/inventario/bodegas_inventario?limit=-1", "")
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
