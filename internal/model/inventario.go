package model

import "time"

// Catalog tables use smallint keys that callers may assign explicitly;
// transactional tables (elementos, precios, movimientos) use generated bigint keys.

type BodegaInventario struct {
	ID        int16  `db:"id" json:"id"`
	Nombre    string `db:"nombre" json:"nombre"`
	Ubicacion string `db:"ubicacion" json:"ubicacion"`
}

type GrupoInventario struct {
	ID     int16  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

// UnidadMedida is keyed by a short code ("un", "kg", "ml") supplied by the caller.
type UnidadMedida struct {
	ID               string `db:"id" json:"id"`
	Nombre           string `db:"nombre" json:"nombre"`
	TipoUnidadMedida string `db:"tipo_unidad_medida" json:"tipo_unidad_medida"`
}

type EstadoElementoInventario struct {
	ID     int16  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

type ElementoInventario struct {
	ID                     int64     `db:"id" json:"id"`
	Nombre                 string    `db:"nombre" json:"nombre"`
	BodegaInventarioID     *int16    `db:"bodega_inventario_id" json:"bodega_inventario_id,omitempty"`
	GrupoInventarioID      *int16    `db:"grupo_inventario_id" json:"grupo_inventario_id,omitempty"`
	Cantidad               *int64    `db:"cantidad" json:"cantidad,omitempty"`
	UnidadMedidaCantidadID *string   `db:"unidad_medida_cantidad_id" json:"unidad_medida_cantidad_id,omitempty"`
	Peso                   *int64    `db:"peso" json:"peso,omitempty"`
	UnidadMedidaPesoID     *string   `db:"unidad_medida_peso_id" json:"unidad_medida_peso_id,omitempty"`
	Volumen                *int64    `db:"volumen" json:"volumen,omitempty"`
	UnidadMedidaVolumenID  *string   `db:"unidad_medida_volumen_id" json:"unidad_medida_volumen_id,omitempty"`
	EstadoElementoID       int16     `db:"estado_elemento_id" json:"estado_elemento_id"`
	UsuarioID              *int64    `db:"usuario_id" json:"usuario_id,omitempty"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// ElementoCompuestoInventario is an assembly of simple items; its parts are
// recorded in elementos_por_elemento_compuesto.
type ElementoCompuestoInventario struct {
	ID                     int64     `db:"id" json:"id"`
	Nombre                 string    `db:"nombre" json:"nombre"`
	BodegaInventarioID     *int16    `db:"bodega_inventario_id" json:"bodega_inventario_id,omitempty"`
	GrupoInventarioID      *int16    `db:"grupo_inventario_id" json:"grupo_inventario_id,omitempty"`
	Cantidad               *int64    `db:"cantidad" json:"cantidad,omitempty"`
	UnidadMedidaCantidadID *string   `db:"unidad_medida_cantidad_id" json:"unidad_medida_cantidad_id,omitempty"`
	Peso                   *int64    `db:"peso" json:"peso,omitempty"`
	UnidadMedidaPesoID     *string   `db:"unidad_medida_peso_id" json:"unidad_medida_peso_id,omitempty"`
	Volumen                *int64    `db:"volumen" json:"volumen,omitempty"`
	UnidadMedidaVolumenID  *string   `db:"unidad_medida_volumen_id" json:"unidad_medida_volumen_id,omitempty"`
	EstadoElementoID       int16     `db:"estado_elemento_id" json:"estado_elemento_id"`
	UsuarioID              *int64    `db:"usuario_id" json:"usuario_id,omitempty"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

type ElementoPorElementoCompuesto struct {
	ID                            int64 `db:"id" json:"id"`
	ElementoCompuestoInventarioID int64 `db:"elemento_compuesto_inventario_id" json:"elemento_compuesto_inventario_id"`
	ElementoInventarioID          int64 `db:"elemento_inventario_id" json:"elemento_inventario_id"`
}

type TipoPrecioElementoInventario struct {
	ID     int16  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

type PrecioElementoInventario struct {
	ID                   int64      `db:"id" json:"id"`
	ElementoInventarioID int64      `db:"elemento_inventario_id" json:"elemento_inventario_id"`
	Precio               float64    `db:"precio" json:"precio"`
	TipoPrecioID         int16      `db:"tipo_precio_id" json:"tipo_precio_id"`
	Fini                 time.Time  `db:"fini" json:"fini"`
	Ffin                 *time.Time `db:"ffin" json:"ffin,omitempty"`
}

type TipoMovimientoInventario struct {
	ID     int16  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

type MovimientoInventario struct {
	ID                            int64     `db:"id" json:"id"`
	Nombre                        string    `db:"nombre" json:"nombre"`
	Cantidad                      int64     `db:"cantidad" json:"cantidad"`
	TipoMovimientoID              *int16    `db:"tipo_movimiento_id" json:"tipo_movimiento_id,omitempty"`
	ElementoInventarioID          *int64    `db:"elemento_inventario_id" json:"elemento_inventario_id,omitempty"`
	ElementoCompuestoInventarioID *int64    `db:"elemento_compuesto_inventario_id" json:"elemento_compuesto_inventario_id,omitempty"`
	UsuarioID                     *int64    `db:"usuario_id" json:"usuario_id,omitempty"`
	CreatedAt                     time.Time `db:"created_at" json:"created_at"`
}
