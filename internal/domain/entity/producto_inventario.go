package entity

// ProductoInventario fila de inventario por tienda. Idx es la posición/orden que trae la tabla.
type ProductoInventario struct {
	Producto string
	Cantidad int
	Tienda   string
	Idx      int
}
