package postgres

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// MapProductoInventario convierte una fila sin tipo (pgx.RowToMap) en ProductoInventario.
// La tabla de inventario la llenan procesos externos: cantidad puede venir nula, como texto
// o como numérico. Cualquier valor no convertible queda en 0 y los textos ausentes en "".
func MapProductoInventario(row map[string]any) *entity.ProductoInventario {
	return &entity.ProductoInventario{
		Producto: toString(row["producto"]),
		Cantidad: toInt(row["cantidad"]),
		Tienda:   toString(row["tienda"]),
		Idx:      toInt(row["idx"]),
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case decimal.Decimal:
		return int(x.IntPart())
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return 0
		}
		return floatToInt(f.Float64)
	case json.Number:
		return parseIntString(x.String())
	case string:
		return parseIntString(x)
	case []byte:
		return parseIntString(string(x))
	default:
		return 0
	}
}

func parseIntString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return floatToInt(f)
	}
	return 0
}

func floatToInt(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}
