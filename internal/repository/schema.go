package repository

import "inventario-api/internal/model"

// The descriptor table: one entry per entity, replacing per-type repository
// code with data. Column order matches the migration and the struct field
// order so pgx can scan rows by name.

func Bodegas() Descriptor[model.BodegaInventario, model.BodegaInventarioPatch, int16] {
	return Descriptor[model.BodegaInventario, model.BodegaInventarioPatch, int16]{
		Name:      "bodega_inventario",
		Table:     "bodegas_inventario",
		Columns:   []string{"id", "nombre", "ubicacion"},
		Generated: []string{"id"},
		Values: func(e *model.BodegaInventario) []any {
			return []any{e.ID, e.Nombre, e.Ubicacion}
		},
		Apply: func(e *model.BodegaInventario, p *model.BodegaInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			changed = assign(changed, "ubicacion", &e.Ubicacion, p.Ubicacion)
			return changed
		},
	}
}

func Grupos() Descriptor[model.GrupoInventario, model.GrupoInventarioPatch, int16] {
	return Descriptor[model.GrupoInventario, model.GrupoInventarioPatch, int16]{
		Name:      "grupo_inventario",
		Table:     "grupos_inventario",
		Columns:   []string{"id", "nombre"},
		Generated: []string{"id"},
		Values: func(e *model.GrupoInventario) []any {
			return []any{e.ID, e.Nombre}
		},
		Apply: func(e *model.GrupoInventario, p *model.GrupoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			return changed
		},
	}
}

func UnidadesMedida() Descriptor[model.UnidadMedida, model.UnidadMedidaPatch, string] {
	return Descriptor[model.UnidadMedida, model.UnidadMedidaPatch, string]{
		Name:    "unidad_medida",
		Table:   "unidades_medida",
		Columns: []string{"id", "nombre", "tipo_unidad_medida"},
		Values: func(e *model.UnidadMedida) []any {
			return []any{e.ID, e.Nombre, e.TipoUnidadMedida}
		},
		Apply: func(e *model.UnidadMedida, p *model.UnidadMedidaPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			changed = assign(changed, "tipo_unidad_medida", &e.TipoUnidadMedida, p.TipoUnidadMedida)
			return changed
		},
	}
}

func Estados() Descriptor[model.EstadoElementoInventario, model.EstadoElementoInventarioPatch, int16] {
	return Descriptor[model.EstadoElementoInventario, model.EstadoElementoInventarioPatch, int16]{
		Name:      "estado_elemento_inventario",
		Table:     "estados_elemento_inventario",
		Columns:   []string{"id", "nombre"},
		Generated: []string{"id"},
		Values: func(e *model.EstadoElementoInventario) []any {
			return []any{e.ID, e.Nombre}
		},
		Apply: func(e *model.EstadoElementoInventario, p *model.EstadoElementoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			return changed
		},
	}
}

func Elementos() Descriptor[model.ElementoInventario, model.ElementoInventarioPatch, int64] {
	return Descriptor[model.ElementoInventario, model.ElementoInventarioPatch, int64]{
		Name:  "elemento_inventario",
		Table: "elementos_inventario",
		Columns: []string{
			"id", "nombre", "bodega_inventario_id", "grupo_inventario_id",
			"cantidad", "unidad_medida_cantidad_id", "peso", "unidad_medida_peso_id",
			"volumen", "unidad_medida_volumen_id", "estado_elemento_id", "usuario_id",
			"created_at",
		},
		Generated: []string{"id", "created_at"},
		Values: func(e *model.ElementoInventario) []any {
			return []any{
				e.ID, e.Nombre, e.BodegaInventarioID, e.GrupoInventarioID,
				e.Cantidad, e.UnidadMedidaCantidadID, e.Peso, e.UnidadMedidaPesoID,
				e.Volumen, e.UnidadMedidaVolumenID, e.EstadoElementoID, e.UsuarioID,
				e.CreatedAt,
			}
		},
		Apply: func(e *model.ElementoInventario, p *model.ElementoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			changed = assignPtr(changed, "bodega_inventario_id", &e.BodegaInventarioID, p.BodegaInventarioID)
			changed = assignPtr(changed, "grupo_inventario_id", &e.GrupoInventarioID, p.GrupoInventarioID)
			changed = assignPtr(changed, "cantidad", &e.Cantidad, p.Cantidad)
			changed = assignPtr(changed, "unidad_medida_cantidad_id", &e.UnidadMedidaCantidadID, p.UnidadMedidaCantidadID)
			changed = assignPtr(changed, "peso", &e.Peso, p.Peso)
			changed = assignPtr(changed, "unidad_medida_peso_id", &e.UnidadMedidaPesoID, p.UnidadMedidaPesoID)
			changed = assignPtr(changed, "volumen", &e.Volumen, p.Volumen)
			changed = assignPtr(changed, "unidad_medida_volumen_id", &e.UnidadMedidaVolumenID, p.UnidadMedidaVolumenID)
			changed = assign(changed, "estado_elemento_id", &e.EstadoElementoID, p.EstadoElementoID)
			changed = assignPtr(changed, "usuario_id", &e.UsuarioID, p.UsuarioID)
			return changed
		},
	}
}

func ElementosCompuestos() Descriptor[model.ElementoCompuestoInventario, model.ElementoCompuestoInventarioPatch, int64] {
	return Descriptor[model.ElementoCompuestoInventario, model.ElementoCompuestoInventarioPatch, int64]{
		Name:  "elemento_compuesto_inventario",
		Table: "elementos_compuestos_inventario",
		Columns: []string{
			"id", "nombre", "bodega_inventario_id", "grupo_inventario_id",
			"cantidad", "unidad_medida_cantidad_id", "peso", "unidad_medida_peso_id",
			"volumen", "unidad_medida_volumen_id", "estado_elemento_id", "usuario_id",
			"created_at",
		},
		Generated: []string{"id", "created_at"},
		Values: func(e *model.ElementoCompuestoInventario) []any {
			return []any{
				e.ID, e.Nombre, e.BodegaInventarioID, e.GrupoInventarioID,
				e.Cantidad, e.UnidadMedidaCantidadID, e.Peso, e.UnidadMedidaPesoID,
				e.Volumen, e.UnidadMedidaVolumenID, e.EstadoElementoID, e.UsuarioID,
				e.CreatedAt,
			}
		},
		Apply: func(e *model.ElementoCompuestoInventario, p *model.ElementoCompuestoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			changed = assignPtr(changed, "bodega_inventario_id", &e.BodegaInventarioID, p.BodegaInventarioID)
			changed = assignPtr(changed, "grupo_inventario_id", &e.GrupoInventarioID, p.GrupoInventarioID)
			changed = assignPtr(changed, "cantidad", &e.Cantidad, p.Cantidad)
			changed = assignPtr(changed, "unidad_medida_cantidad_id", &e.UnidadMedidaCantidadID, p.UnidadMedidaCantidadID)
			changed = assignPtr(changed, "peso", &e.Peso, p.Peso)
			changed = assignPtr(changed, "unidad_medida_peso_id", &e.UnidadMedidaPesoID, p.UnidadMedidaPesoID)
			changed = assignPtr(changed, "volumen", &e.Volumen, p.Volumen)
			changed = assignPtr(changed, "unidad_medida_volumen_id", &e.UnidadMedidaVolumenID, p.UnidadMedidaVolumenID)
			changed = assign(changed, "estado_elemento_id", &e.EstadoElementoID, p.EstadoElementoID)
			changed = assignPtr(changed, "usuario_id", &e.UsuarioID, p.UsuarioID)
			return changed
		},
	}
}

func ElementosPorCompuesto() Descriptor[model.ElementoPorElementoCompuesto, model.ElementoPorElementoCompuestoPatch, int64] {
	return Descriptor[model.ElementoPorElementoCompuesto, model.ElementoPorElementoCompuestoPatch, int64]{
		Name:      "elemento_por_elemento_compuesto",
		Table:     "elementos_por_elemento_compuesto",
		Columns:   []string{"id", "elemento_compuesto_inventario_id", "elemento_inventario_id"},
		Generated: []string{"id"},
		Values: func(e *model.ElementoPorElementoCompuesto) []any {
			return []any{e.ID, e.ElementoCompuestoInventarioID, e.ElementoInventarioID}
		},
		Apply: func(e *model.ElementoPorElementoCompuesto, p *model.ElementoPorElementoCompuestoPatch) []string {
			var changed []string
			changed = assign(changed, "elemento_compuesto_inventario_id", &e.ElementoCompuestoInventarioID, p.ElementoCompuestoInventarioID)
			changed = assign(changed, "elemento_inventario_id", &e.ElementoInventarioID, p.ElementoInventarioID)
			return changed
		},
	}
}

func TiposPrecio() Descriptor[model.TipoPrecioElementoInventario, model.TipoPrecioElementoInventarioPatch, int16] {
	return Descriptor[model.TipoPrecioElementoInventario, model.TipoPrecioElementoInventarioPatch, int16]{
		Name:      "tipo_precio_elemento_inventario",
		Table:     "tipos_precio_elemento_inventario",
		Columns:   []string{"id", "nombre"},
		Generated: []string{"id"},
		Values: func(e *model.TipoPrecioElementoInventario) []any {
			return []any{e.ID, e.Nombre}
		},
		Apply: func(e *model.TipoPrecioElementoInventario, p *model.TipoPrecioElementoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			return changed
		},
	}
}

func Precios() Descriptor[model.PrecioElementoInventario, model.PrecioElementoInventarioPatch, int64] {
	return Descriptor[model.PrecioElementoInventario, model.PrecioElementoInventarioPatch, int64]{
		Name:      "precio_elemento_inventario",
		Table:     "precios_elemento_inventario",
		Columns:   []string{"id", "elemento_inventario_id", "precio", "tipo_precio_id", "fini", "ffin"},
		Generated: []string{"id"},
		Values: func(e *model.PrecioElementoInventario) []any {
			return []any{e.ID, e.ElementoInventarioID, e.Precio, e.TipoPrecioID, e.Fini, e.Ffin}
		},
		Apply: func(e *model.PrecioElementoInventario, p *model.PrecioElementoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "elemento_inventario_id", &e.ElementoInventarioID, p.ElementoInventarioID)
			changed = assign(changed, "precio", &e.Precio, p.Precio)
			changed = assign(changed, "tipo_precio_id", &e.TipoPrecioID, p.TipoPrecioID)
			changed = assign(changed, "fini", &e.Fini, p.Fini)
			changed = assignPtr(changed, "ffin", &e.Ffin, p.Ffin)
			return changed
		},
	}
}

func TiposMovimiento() Descriptor[model.TipoMovimientoInventario, model.TipoMovimientoInventarioPatch, int16] {
	return Descriptor[model.TipoMovimientoInventario, model.TipoMovimientoInventarioPatch, int16]{
		Name:      "tipo_movimiento_inventario",
		Table:     "tipos_movimiento_inventario",
		Columns:   []string{"id", "nombre"},
		Generated: []string{"id"},
		Values: func(e *model.TipoMovimientoInventario) []any {
			return []any{e.ID, e.Nombre}
		},
		Apply: func(e *model.TipoMovimientoInventario, p *model.TipoMovimientoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			return changed
		},
	}
}

func Movimientos() Descriptor[model.MovimientoInventario, model.MovimientoInventarioPatch, int64] {
	return Descriptor[model.MovimientoInventario, model.MovimientoInventarioPatch, int64]{
		Name:  "movimiento_inventario",
		Table: "movimientos_inventario",
		Columns: []string{
			"id", "nombre", "cantidad", "tipo_movimiento_id",
			"elemento_inventario_id", "elemento_compuesto_inventario_id", "usuario_id",
			"created_at",
		},
		Generated: []string{"id", "created_at"},
		Values: func(e *model.MovimientoInventario) []any {
			return []any{
				e.ID, e.Nombre, e.Cantidad, e.TipoMovimientoID,
				e.ElementoInventarioID, e.ElementoCompuestoInventarioID, e.UsuarioID,
				e.CreatedAt,
			}
		},
		Apply: func(e *model.MovimientoInventario, p *model.MovimientoInventarioPatch) []string {
			var changed []string
			changed = assign(changed, "nombre", &e.Nombre, p.Nombre)
			changed = assign(changed, "cantidad", &e.Cantidad, p.Cantidad)
			changed = assignPtr(changed, "tipo_movimiento_id", &e.TipoMovimientoID, p.TipoMovimientoID)
			changed = assignPtr(changed, "elemento_inventario_id", &e.ElementoInventarioID, p.ElementoInventarioID)
			changed = assignPtr(changed, "elemento_compuesto_inventario_id", &e.ElementoCompuestoInventarioID, p.ElementoCompuestoInventarioID)
			changed = assignPtr(changed, "usuario_id", &e.UsuarioID, p.UsuarioID)
			return changed
		},
	}
}

func Usuarios() Descriptor[model.Usuario, model.UsuarioPatch, int64] {
	return Descriptor[model.Usuario, model.UsuarioPatch, int64]{
		Name:      "usuario",
		Table:     "usuarios",
		Columns:   []string{"id", "username", "password", "contacto_id"},
		Generated: []string{"id"},
		Values: func(e *model.Usuario) []any {
			return []any{e.ID, e.Username, e.Password, e.ContactoID}
		},
		Apply: func(e *model.Usuario, p *model.UsuarioPatch) []string {
			var changed []string
			changed = assign(changed, "username", &e.Username, p.Username)
			changed = assignPtr(changed, "contacto_id", &e.ContactoID, p.ContactoID)
			return changed
		},
	}
}

// assign copies src onto dst when the patch set it to a different value, and
// records the column as changed.
func assign[V comparable](changed []string, col string, dst *V, src *V) []string {
	if src == nil || *src == *dst {
		return changed
	}
	*dst = *src
	return append(changed, col)
}

// assignPtr is assign for nullable columns. A nil patch field leaves the
// column untouched; setting a null column to a value counts as a change.
func assignPtr[V comparable](changed []string, col string, dst **V, src *V) []string {
	if src == nil {
		return changed
	}
	if *dst != nil && **dst == *src {
		return changed
	}
	v := *src
	*dst = &v
	return append(changed, col)
}
