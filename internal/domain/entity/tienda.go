package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Estados válidos de una tienda.
const (
	EstadoTiendaActivo   = "activo"
	EstadoTiendaInactivo = "inactivo"
)

// Tienda representa una tienda/vendedor cuyos pedidos entrega Magic Stars.
// Raw conserva la fila completa tal como la devuelve la base de datos.
type Tienda struct {
	ID        string
	Nombre    string // siempre normalizado (ver NormalizeNombreTienda)
	Estado    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Raw       json.RawMessage
}

// NormalizeNombreTienda recorta, colapsa espacios internos y pasa a mayúsculas.
// " all  stars " -> "ALL STARS"
func NormalizeNombreTienda(nombre string) string {
	return strings.ToUpper(strings.Join(strings.Fields(nombre), " "))
}

// NormalizeEstadoTienda aplica "activo" cuando el estado viene vacío.
func NormalizeEstadoTienda(estado string) string {
	estado = strings.ToLower(strings.TrimSpace(estado))
	if estado == "" {
		return EstadoTiendaActivo
	}
	return estado
}

// EstadoTiendaValido indica si el estado es uno de los admitidos.
func EstadoTiendaValido(estado string) bool {
	return estado == EstadoTiendaActivo || estado == EstadoTiendaInactivo
}
