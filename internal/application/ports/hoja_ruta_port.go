package ports

import (
	"context"
	"time"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// HojaRutaLinea pedido de la hoja de ruta con su tipo de envío ya resuelto.
type HojaRutaLinea struct {
	Pedido    *entity.Pedido
	TipoEnvio string
}

// HojaRutaGenerator genera el PDF de la hoja de ruta de un mensajero para un día.
type HojaRutaGenerator interface {
	GenerateHojaRuta(ctx context.Context, mensajero string, fecha time.Time, lineas []HojaRutaLinea) ([]byte, error)
}
