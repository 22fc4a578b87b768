package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
	"github.com/magicstars/ops-api/pkg/logger"
)

// TiendaUseCase casos de uso de tiendas. Antes de escribir verifica que no exista otra
// tienda activa con el mismo nombre; el índice único de la base sigue siendo la
// garantía final si dos escrituras compiten.
type TiendaUseCase struct {
	repo repository.TiendaRepository
	tx   TiendaTxRunner
	log  *logger.Logger
	now  func() time.Time
}

// TiendaTxRunner ejecuta fn en una transacción que serializa las escrituras sobre el
// mismo nombre, con un repositorio atado a esa transacción.
type TiendaTxRunner interface {
	RunTiendaLocked(ctx context.Context, nombre string, fn func(repo repository.TiendaRepository) error) error
}

// NewTiendaUseCase construye el caso de uso. tx puede ser nil: la verificación y la
// escritura se hacen entonces sin transacción.
func NewTiendaUseCase(repo repository.TiendaRepository, tx TiendaTxRunner, log *logger.Logger) *TiendaUseCase {
	return &TiendaUseCase{repo: repo, tx: tx, log: log.Named("tiendas"), now: time.Now}
}

// Create normaliza el nombre, valida duplicados y crea la tienda.
func (uc *TiendaUseCase) Create(ctx context.Context, in dto.CreateTiendaRequest) (*dto.TiendaResponse, error) {
	nombre := entity.NormalizeNombreTienda(in.Nombre)
	estado := entity.NormalizeEstadoTienda(in.Estado)
	if nombre == "" || !entity.EstadoTiendaValido(estado) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	tienda := &entity.Tienda{
		ID:        uuid.New().String(),
		Nombre:    nombre,
		Estado:    estado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.write(ctx, nombre, func(repo repository.TiendaRepository) error {
		if err := uc.ensureNombreDisponible(ctx, repo, nombre, estado, ""); err != nil {
			return err
		}
		return repo.Create(ctx, tienda)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateName) {
			uc.log.Error().Err(err).Str("nombre", nombre).Msg("❌ crear tienda")
		}
		return nil, err
	}
	return toTiendaResponse(tienda), nil
}

// Update aplica los campos presentes. domain.ErrNotFound si la tienda no existe.
func (uc *TiendaUseCase) Update(ctx context.Context, id string, in dto.UpdateTiendaRequest) (*dto.TiendaResponse, error) {
	tienda, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("id", id).Msg("❌ obtener tienda para actualizar")
		return nil, err
	}
	if tienda == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != nil {
		tienda.Nombre = entity.NormalizeNombreTienda(*in.Nombre)
	}
	if in.Estado != nil {
		tienda.Estado = entity.NormalizeEstadoTienda(*in.Estado)
	}
	if tienda.Nombre == "" || !entity.EstadoTiendaValido(tienda.Estado) {
		return nil, domain.ErrInvalidInput
	}

	tienda.UpdatedAt = uc.now()
	err = uc.write(ctx, tienda.Nombre, func(repo repository.TiendaRepository) error {
		if err := uc.ensureNombreDisponible(ctx, repo, tienda.Nombre, tienda.Estado, tienda.ID); err != nil {
			return err
		}
		return repo.Update(ctx, tienda)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateName) && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("id", id).Msg("❌ actualizar tienda")
		}
		return nil, err
	}
	return toTiendaResponse(tienda), nil
}

// Upsert actualiza cuando viene id y crea en caso contrario.
func (uc *TiendaUseCase) Upsert(ctx context.Context, in dto.UpsertTiendaRequest) (*dto.TiendaResponse, error) {
	if in.ID == "" {
		return uc.Create(ctx, dto.CreateTiendaRequest{Nombre: in.Nombre, Estado: in.Estado})
	}
	upd := dto.UpdateTiendaRequest{Nombre: &in.Nombre}
	if in.Estado != "" {
		upd.Estado = &in.Estado
	}
	return uc.Update(ctx, in.ID, upd)
}

// GetByID obtiene una tienda; (nil, nil) si no existe.
func (uc *TiendaUseCase) GetByID(ctx context.Context, id string) (*dto.TiendaResponse, error) {
	tienda, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("id", id).Msg("❌ obtener tienda")
		return nil, err
	}
	if tienda == nil {
		return nil, nil
	}
	return toTiendaResponse(tienda), nil
}

// List lista tiendas. Un fallo de lectura se registra y devuelve una lista vacía.
func (uc *TiendaUseCase) List(ctx context.Context, q dto.TiendaListQuery) *dto.TiendaListResponse {
	limit, offset := normalizePage(q.Limit, q.Offset)
	list, total, err := uc.repo.List(ctx, repository.TiendaFilter{
		Estado: q.Estado,
		Search: strings.TrimSpace(q.Search),
		SortBy: q.SortBy,
		Desc:   q.Order == "desc",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("❌ listar tiendas")
		list, total = nil, 0
	}

	items := make([]dto.TiendaResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTiendaResponse(t))
	}
	return &dto.TiendaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}

// Delete elimina una tienda por ID.
func (uc *TiendaUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("id", id).Msg("❌ eliminar tienda")
		}
		return err
	}
	return nil
}

// ensureNombreDisponible falla con domain.ErrDuplicateName si otra tienda activa
// (distinta de excludeID) ya usa el nombre. Las tiendas inactivas no compiten.
func (uc *TiendaUseCase) ensureNombreDisponible(ctx context.Context, repo repository.TiendaRepository, nombre, estado, excludeID string) error {
	if estado != entity.EstadoTiendaActivo {
		return nil
	}
	existing, err := repo.FindActiveByNombre(ctx, nombre)
	if err != nil {
		return fmt.Errorf("verificar nombre de tienda: %w", err)
	}
	if existing != nil && existing.ID != excludeID {
		return domain.ErrDuplicateName
	}
	return nil
}

// write ejecuta fn dentro de la transacción bloqueada por nombre, o directo sobre el
// repositorio si no hay runner.
func (uc *TiendaUseCase) write(ctx context.Context, nombre string, fn func(repo repository.TiendaRepository) error) error {
	if uc.tx == nil {
		return fn(uc.repo)
	}
	return uc.tx.RunTiendaLocked(ctx, nombre, fn)
}

func toTiendaResponse(t *entity.Tienda) *dto.TiendaResponse {
	if t == nil {
		return nil
	}
	return &dto.TiendaResponse{
		ID:        t.ID,
		Nombre:    t.Nombre,
		Estado:    t.Estado,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Raw:       t.Raw,
	}
}
