package dto

// ProductoInventarioResponse fila de inventario.
type ProductoInventarioResponse struct {
	Producto string `json:"producto"`
	Cantidad int    `json:"cantidad"`
	Tienda   string `json:"tienda"`
	Idx      int    `json:"idx"`
}

// InventarioListResponse lista paginada del inventario.
type InventarioListResponse struct {
	Items []ProductoInventarioResponse `json:"items"`
	Page  PageResponse                 `json:"page"`
}

// InventarioListQuery parámetros de listado.
type InventarioListQuery struct {
	Tienda string `query:"tienda"`
	Search string `query:"search"`
	SortBy string `query:"sort_by" validate:"omitempty,oneof=producto cantidad idx"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// InventarioStatsResponse tarjetas de resumen del inventario.
type InventarioStatsResponse struct {
	Tienda         string `json:"tienda,omitempty"`
	TotalProductos int    `json:"total_productos"`
	TotalUnidades  int    `json:"total_unidades"`
	StockBajo      int    `json:"stock_bajo"`
	SinStock       int    `json:"sin_stock"`
	UmbralBajo     int    `json:"umbral_bajo"`
}

// InventarioTiendasResponse tiendas con inventario cargado.
type InventarioTiendasResponse struct {
	Tiendas []string `json:"tiendas"`
}
