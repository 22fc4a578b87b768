package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

// ── Tiendas ──────────────────────────────────────────────────────────────────

type fakeTiendaRepo struct {
	tiendas     map[string]*entity.Tienda
	createCalls int
	updateCalls int
	listErr     error
	lastFilter  repository.TiendaFilter
}

func newFakeTiendaRepo(seed ...*entity.Tienda) *fakeTiendaRepo {
	r := &fakeTiendaRepo{tiendas: map[string]*entity.Tienda{}}
	for _, t := range seed {
		r.tiendas[t.ID] = t
	}
	return r
}

func (r *fakeTiendaRepo) Create(_ context.Context, t *entity.Tienda) error {
	r.createCalls++
	cp := *t
	r.tiendas[t.ID] = &cp
	return nil
}

func (r *fakeTiendaRepo) GetByID(_ context.Context, id string) (*entity.Tienda, error) {
	t, ok := r.tiendas[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTiendaRepo) FindActiveByNombre(_ context.Context, nombre string) (*entity.Tienda, error) {
	for _, t := range r.tiendas {
		if t.Estado == entity.EstadoTiendaActivo && strings.EqualFold(t.Nombre, nombre) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTiendaRepo) Update(_ context.Context, t *entity.Tienda) error {
	r.updateCalls++
	if _, ok := r.tiendas[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.tiendas[t.ID] = &cp
	return nil
}

func (r *fakeTiendaRepo) List(_ context.Context, f repository.TiendaFilter) ([]*entity.Tienda, int, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	out := make([]*entity.Tienda, 0, len(r.tiendas))
	for _, t := range r.tiendas {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeTiendaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tiendas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tiendas, id)
	return nil
}

// ── Inventario ───────────────────────────────────────────────────────────────

type fakeInventarioRepo struct {
	items      []*entity.ProductoInventario
	tiendas    []string
	err        error
	lastFilter repository.InventarioFilter
}

func (r *fakeInventarioRepo) List(_ context.Context, f repository.InventarioFilter) ([]*entity.ProductoInventario, int, error) {
	r.lastFilter = f
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []*entity.ProductoInventario
	for _, p := range r.items {
		if f.Tienda == "" || p.Tienda == f.Tienda {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *fakeInventarioRepo) ListTiendas(context.Context) ([]string, error) {
	return r.tiendas, r.err
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos    []*entity.Pedido
	err        error
	lastFilter repository.PedidoFilter
}

func (r *fakePedidoRepo) List(_ context.Context, f repository.PedidoFilter) ([]*entity.Pedido, int, error) {
	r.lastFilter = f
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []*entity.Pedido
	for _, p := range r.pedidos {
		if f.Mensajero != "" && p.MensajeroAsignado != f.Mensajero && p.MensajeroConcretado != f.Mensajero {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (r *fakePedidoRepo) GetByID(_ context.Context, id string) (*entity.Pedido, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.pedidos {
		if p.IDPedido == id {
			return p, nil
		}
	}
	return nil, nil
}

type fakeZonas map[string]string

func (z fakeZonas) Resolve(provincia, canton, distrito string) (string, bool) {
	v, ok := z[provincia+"/"+canton+"/"+distrito]
	return v, ok
}

type fakeForwarder struct {
	endpoint string
	body     []byte
	resp     *ports.WebhookResponse
	err      error
}

func (f *fakeForwarder) Forward(_ context.Context, endpoint string, body []byte) (*ports.WebhookResponse, error) {
	f.endpoint = endpoint
	f.body = body
	return f.resp, f.err
}

type fakeHojaRuta struct {
	mensajero string
	fecha     time.Time
	lineas    []ports.HojaRutaLinea
}

func (g *fakeHojaRuta) GenerateHojaRuta(_ context.Context, mensajero string, fecha time.Time, lineas []ports.HojaRutaLinea) ([]byte, error) {
	g.mensajero, g.fecha, g.lineas = mensajero, fecha, lineas
	return []byte("%PDF-fake"), nil
}

type fakeTiendaTx struct {
	repo   *fakeTiendaRepo
	claves []string
}

func (tx *fakeTiendaTx) RunTiendaLocked(_ context.Context, nombre string, fn func(repo repository.TiendaRepository) error) error {
	tx.claves = append(tx.claves, nombre)
	return fn(tx.repo)
}
