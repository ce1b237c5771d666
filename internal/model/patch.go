package model

import "time"

// Patch types carry only the mutable fields of their entity; a nil field means
// "leave unchanged". Primary keys and created_at are deliberately absent, so an
// update can never move a record to a different id.

type BodegaInventarioPatch struct {
	Nombre    *string `json:"nombre"`
	Ubicacion *string `json:"ubicacion"`
}

type GrupoInventarioPatch struct {
	Nombre *string `json:"nombre"`
}

type UnidadMedidaPatch struct {
	Nombre           *string `json:"nombre"`
	TipoUnidadMedida *string `json:"tipo_unidad_medida"`
}

type EstadoElementoInventarioPatch struct {
	Nombre *string `json:"nombre"`
}

type ElementoInventarioPatch struct {
	Nombre                 *string `json:"nombre"`
	BodegaInventarioID     *int16  `json:"bodega_inventario_id"`
	GrupoInventarioID      *int16  `json:"grupo_inventario_id"`
	Cantidad               *int64  `json:"cantidad"`
	UnidadMedidaCantidadID *string `json:"unidad_medida_cantidad_id"`
	Peso                   *int64  `json:"peso"`
	UnidadMedidaPesoID     *string `json:"unidad_medida_peso_id"`
	Volumen                *int64  `json:"volumen"`
	UnidadMedidaVolumenID  *string `json:"unidad_medida_volumen_id"`
	EstadoElementoID       *int16  `json:"estado_elemento_id"`
	UsuarioID              *int64  `json:"usuario_id"`
}

type ElementoCompuestoInventarioPatch struct {
	Nombre                 *string `json:"nombre"`
	BodegaInventarioID     *int16  `json:"bodega_inventario_id"`
	GrupoInventarioID      *int16  `json:"grupo_inventario_id"`
	Cantidad               *int64  `json:"cantidad"`
	UnidadMedidaCantidadID *string `json:"unidad_medida_cantidad_id"`
	Peso                   *int64  `json:"peso"`
	UnidadMedidaPesoID     *string `json:"unidad_medida_peso_id"`
	Volumen                *int64  `json:"volumen"`
	UnidadMedidaVolumenID  *string `json:"unidad_medida_volumen_id"`
	EstadoElementoID       *int16  `json:"estado_elemento_id"`
	UsuarioID              *int64  `json:"usuario_id"`
}

type ElementoPorElementoCompuestoPatch struct {
	ElementoCompuestoInventarioID *int64 `json:"elemento_compuesto_inventario_id"`
	ElementoInventarioID          *int64 `json:"elemento_inventario_id"`
}

type TipoPrecioElementoInventarioPatch struct {
	Nombre *string `json:"nombre"`
}

type PrecioElementoInventarioPatch struct {
	ElementoInventarioID *int64     `json:"elemento_inventario_id"`
	Precio               *float64   `json:"precio"`
	TipoPrecioID         *int16     `json:"tipo_precio_id"`
	Fini                 *time.Time `json:"fini"`
	Ffin                 *time.Time `json:"ffin"`
}

type TipoMovimientoInventarioPatch struct {
	Nombre *string `json:"nombre"`
}

type MovimientoInventarioPatch struct {
	Nombre                        *string `json:"nombre"`
	Cantidad                      *int64  `json:"cantidad"`
	TipoMovimientoID              *int16  `json:"tipo_movimiento_id"`
	ElementoInventarioID          *int64  `json:"elemento_inventario_id"`
	ElementoCompuestoInventarioID *int64  `json:"elemento_compuesto_inventario_id"`
	UsuarioID                     *int64  `json:"usuario_id"`
}

type UsuarioPatch struct {
	Username   *string `json:"username"`
	ContactoID *int64  `json:"contacto_id"`
}
