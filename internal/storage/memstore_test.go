package storage

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"inventario-api/internal/model"
	"inventario-api/internal/repository"
	"inventario-api/pkg/apierror"
)

func newGrupoStore() *MemStore[model.GrupoInventario, model.GrupoInventarioPatch, int16] {
	s := NewMemStore[model.GrupoInventario, model.GrupoInventarioPatch, int16]("grupo_inventario")
	s.KeyOf = func(e *model.GrupoInventario) int16 { return e.ID }
	s.AssignKey = func(e *model.GrupoInventario, seq int64) { e.ID = int16(seq) }
	s.Apply = repository.Grupos().Apply
	return s
}

func TestMemStoreCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newGrupoStore()

	created, err := s.Create(ctx, model.GrupoInventario{Nombre: "Herramientas"})
	require.NoError(t, err)
	require.Equal(t, int16(1), created.ID)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Herramientas", got.Nombre)

	nombre := "Repuestos"
	updated, err := s.Update(ctx, 1, model.GrupoInventarioPatch{Nombre: &nombre})
	require.NoError(t, err)
	require.Equal(t, "Repuestos", updated.Nombre)

	receipt, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Repuestos", receipt.Nombre)

	_, err = s.Get(ctx, 1)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}

func TestMemStoreListOrderAndWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newGrupoStore()
	for _, nombre := range []string{"A", "B", "C", "D"} {
		_, err := s.Create(ctx, model.GrupoInventario{Nombre: nombre})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "A", all[0].Nombre)

	page, err := s.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "B", page[0].Nombre)
	require.Equal(t, "C", page[1].Nombre)

	empty, err := s.List(ctx, 10, 2)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = s.List(ctx, -1, 2)
	require.Error(t, err)
}

func TestMemStoreKeyHandling(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("caller-supplied key wins over the sequence", func(t *testing.T) {
		s := newGrupoStore()
		created, err := s.Create(ctx, model.GrupoInventario{ID: 40, Nombre: "Fijo"})
		require.NoError(t, err)
		require.Equal(t, int16(40), created.ID)

		_, err = s.Create(ctx, model.GrupoInventario{ID: 40, Nombre: "Duplicado"})
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	})

	t.Run("string keys are never generated", func(t *testing.T) {
		s := NewMemStore[model.UnidadMedida, model.UnidadMedidaPatch, string]("unidad_medida")
		s.KeyOf = func(e *model.UnidadMedida) string { return e.ID }
		s.Apply = repository.UnidadesMedida().Apply

		created, err := s.Create(ctx, model.UnidadMedida{ID: "kg", Nombre: "Kilogramo", TipoUnidadMedida: "peso"})
		require.NoError(t, err)
		require.Equal(t, "kg", created.ID)
	})
}

func TestMemStoreCheckRefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	bodegas := NewMemStore[model.BodegaInventario, model.BodegaInventarioPatch, int16]("bodega_inventario")
	bodegas.KeyOf = func(e *model.BodegaInventario) int16 { return e.ID }
	bodegas.AssignKey = func(e *model.BodegaInventario, seq int64) { e.ID = int16(seq) }
	bodegas.Apply = repository.Bodegas().Apply

	elementos := NewMemStore[model.ElementoInventario, model.ElementoInventarioPatch, int64]("elemento_inventario")
	elementos.KeyOf = func(e *model.ElementoInventario) int64 { return e.ID }
	elementos.AssignKey = func(e *model.ElementoInventario, seq int64) { e.ID = seq }
	elementos.Apply = repository.Elementos().Apply
	elementos.CheckRefs = func(e *model.ElementoInventario) error {
		if e.BodegaInventarioID != nil && !bodegas.Has(*e.BodegaInventarioID) {
			return apierror.Conflict("elemento_inventario references a missing related record", "bodega_inventario_id")
		}
		return nil
	}

	_, err := bodegas.Create(ctx, model.BodegaInventario{Nombre: "Central", Ubicacion: "Cali"})
	require.NoError(t, err)

	known := int16(1)
	_, err = elementos.Create(ctx, model.ElementoInventario{Nombre: "Tornillo", BodegaInventarioID: &known, EstadoElementoID: 1})
	require.NoError(t, err)

	missing := int16(99)
	_, err = elementos.Create(ctx, model.ElementoInventario{Nombre: "Tuerca", BodegaInventarioID: &missing, EstadoElementoID: 1})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)

	// Updates go through the same referential check.
	_, err = elementos.Update(ctx, 1, model.ElementoInventarioPatch{BodegaInventarioID: &missing})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
}

func TestMemStoreSelfReferencingCheckRefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// The hook queries the store it guards, the way a uniqueness check does;
	// writes must not hold the lock across it.
	s := newGrupoStore()
	s.CheckRefs = func(e *model.GrupoInventario) error {
		existing, taken := s.Find(func(other *model.GrupoInventario) bool { return other.Nombre == e.Nombre })
		if taken && existing.ID != e.ID {
			return apierror.Conflict("grupo_inventario violates a unique constraint", "nombre")
		}
		return nil
	}

	first, err := s.Create(ctx, model.GrupoInventario{Nombre: "Herramientas"})
	require.NoError(t, err)

	_, err = s.Create(ctx, model.GrupoInventario{Nombre: "Herramientas"})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)

	second, err := s.Create(ctx, model.GrupoInventario{Nombre: "Repuestos"})
	require.NoError(t, err)

	// The update path runs the same hook, also against its own store.
	taken := "Herramientas"
	_, err = s.Update(ctx, second.ID, model.GrupoInventarioPatch{Nombre: &taken})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)

	free := "Consumibles"
	updated, err := s.Update(ctx, second.ID, model.GrupoInventarioPatch{Nombre: &free})
	require.NoError(t, err)
	require.Equal(t, "Consumibles", updated.Nombre)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "Herramientas", got.Nombre)
}

func TestMemStoreFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newGrupoStore()
	_, err := s.Create(ctx, model.GrupoInventario{Nombre: "Primero"})
	require.NoError(t, err)
	_, err = s.Create(ctx, model.GrupoInventario{Nombre: "Segundo"})
	require.NoError(t, err)

	found, ok := s.Find(func(e *model.GrupoInventario) bool { return e.Nombre == "Segundo" })
	require.True(t, ok)
	require.Equal(t, int16(2), found.ID)

	_, ok = s.Find(func(e *model.GrupoInventario) bool { return e.Nombre == "Tercero" })
	require.False(t, ok)
}
