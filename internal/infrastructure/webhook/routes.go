package webhook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
)

var _ ports.WebhookRoutes = (*Router)(nil)

var endpointPaths = map[string]string{
	ports.EndpointSyncRegistries:   "/webhook/sync-registries",
	ports.EndpointLogin:            "/webhook/login",
	ports.EndpointPedidosMensajero: "/webhook/pedidos-mensajero",
	ports.EndpointActualizarPedido: "/webhook/actualizar-pedido",
	ports.EndpointInventario:       "/webhook/inventario",
	ports.EndpointTiendas:          "/webhook/tiendas",
	ports.EndpointResumenDia:       "/webhook/resumen-dia",
	ports.EndpointLiquidacion:      "/webhook/liquidacion-mensajero",
}

// Endpoints ya migrados al host nuevo; el resto sigue en el host legado.
var migratedEndpoints = []string{
	ports.EndpointSyncRegistries,
	ports.EndpointPedidosMensajero,
	ports.EndpointActualizarPedido,
	ports.EndpointLiquidacion,
}

// Router decide qué host sirve cada endpoint lógico.
type Router struct {
	primaryURL string
	legacyURL  string
	migrated   map[string]bool
}

// NewRouter construye el router con los hosts nuevo (primary) y legado.
func NewRouter(primaryURL, legacyURL string) *Router {
	migrated := make(map[string]bool, len(migratedEndpoints))
	for _, name := range migratedEndpoints {
		migrated[name] = true
	}
	return &Router{
		primaryURL: strings.TrimRight(primaryURL, "/"),
		legacyURL:  strings.TrimRight(legacyURL, "/"),
		migrated:   migrated,
	}
}

// Path devuelve la ruta del endpoint o domain.ErrUnknownEndpoint.
func (r *Router) Path(name string) (string, error) {
	path, ok := endpointPaths[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownEndpoint, name)
	}
	return path, nil
}

// IsMigrated indica si el endpoint ya se sirve desde el host nuevo.
func (r *Router) IsMigrated(name string) bool {
	return r.migrated[name]
}

// BaseURL devuelve el host que sirve el endpoint.
func (r *Router) BaseURL(name string) (string, error) {
	if _, err := r.Path(name); err != nil {
		return "", err
	}
	if r.migrated[name] {
		return r.primaryURL, nil
	}
	return r.legacyURL, nil
}

// URL devuelve la URL completa del endpoint.
func (r *Router) URL(name string) (string, error) {
	base, err := r.BaseURL(name)
	if err != nil {
		return "", err
	}
	return base + endpointPaths[name], nil
}

// Status lista todos los endpoints con su estado de migración, ordenados por nombre.
func (r *Router) Status() []ports.EndpointStatus {
	out := make([]ports.EndpointStatus, 0, len(endpointPaths))
	for name, path := range endpointPaths {
		base := r.legacyURL
		if r.migrated[name] {
			base = r.primaryURL
		}
		out = append(out, ports.EndpointStatus{Name: name, Path: path, Migrated: r.migrated[name], BaseURL: base})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Endpoints devuelve los nombres lógicos conocidos.
func Endpoints() []string {
	names := make([]string, 0, len(endpointPaths))
	for name := range endpointPaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MigratedEndpoints devuelve una copia de la lista de endpoints migrados.
func MigratedEndpoints() []string {
	return append([]string(nil), migratedEndpoints...)
}
