package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

func TestTiendaCreate_NormalizaNombreYEstado(t *testing.T) {
	repo := newFakeTiendaRepo()
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	out, err := uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: " all   stars "})
	require.NoError(t, err)

	assert.Equal(t, "ALL STARS", out.Nombre)
	assert.Equal(t, entity.EstadoTiendaActivo, out.Estado)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestTiendaCreate_DuplicadoNoEscribe(t *testing.T) {
	for _, nombre := range []string{"All Stars", "ALL STARS", "  all stars"} {
		t.Run(nombre, func(t *testing.T) {
			repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "ALL STARS", Estado: entity.EstadoTiendaActivo})
			uc := NewTiendaUseCase(repo, nil, logger.Nop())

			_, err := uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: nombre})
			assert.ErrorIs(t, err, domain.ErrDuplicateName)
			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestTiendaCreate_TiendaInactivaNoCompite(t *testing.T) {
	repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "ALL STARS", Estado: entity.EstadoTiendaInactivo})
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: "all stars"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
}

func TestTiendaCreate_EntradaInvalida(t *testing.T) {
	uc := NewTiendaUseCase(newFakeTiendaRepo(), nil, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: "X", Estado: "cerrado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTiendaUpdate_ExcluyeLaMismaTienda(t *testing.T) {
	repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "ALL STARS", Estado: entity.EstadoTiendaActivo})
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	out, err := uc.Update(context.Background(), "t-1", dto.UpdateTiendaRequest{Nombre: strPtr("all stars")})
	require.NoError(t, err)
	assert.Equal(t, "ALL STARS", out.Nombre)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestTiendaUpdate_DuplicadoDeOtraTienda(t *testing.T) {
	repo := newFakeTiendaRepo(
		&entity.Tienda{ID: "t-1", Nombre: "ALL STARS", Estado: entity.EstadoTiendaActivo},
		&entity.Tienda{ID: "t-2", Nombre: "BELLA", Estado: entity.EstadoTiendaActivo},
	)
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	_, err := uc.Update(context.Background(), "t-2", dto.UpdateTiendaRequest{Nombre: strPtr("All Stars")})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Zero(t, repo.updateCalls)
}

func TestTiendaUpdate_NoExiste(t *testing.T) {
	uc := NewTiendaUseCase(newFakeTiendaRepo(), nil, logger.Nop())

	_, err := uc.Update(context.Background(), "nope", dto.UpdateTiendaRequest{Nombre: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTiendaUpsert(t *testing.T) {
	repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "ALL STARS", Estado: entity.EstadoTiendaActivo})
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	created, err := uc.Upsert(context.Background(), dto.UpsertTiendaRequest{Nombre: "nueva tienda"})
	require.NoError(t, err)
	assert.Equal(t, "NUEVA TIENDA", created.Nombre)
	assert.Equal(t, 1, repo.createCalls)

	updated, err := uc.Upsert(context.Background(), dto.UpsertTiendaRequest{ID: "t-1", Nombre: "all stars cr", Estado: "inactivo"})
	require.NoError(t, err)
	assert.Equal(t, "ALL STARS CR", updated.Nombre)
	assert.Equal(t, entity.EstadoTiendaInactivo, updated.Estado)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestTiendaList_ErrorDevuelveVacio(t *testing.T) {
	repo := newFakeTiendaRepo()
	repo.listErr = errors.New("conexión rechazada")
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	out := uc.List(context.Background(), dto.TiendaListQuery{Limit: 500, Order: "desc"})
	require.NotNil(t, out)
	assert.Empty(t, out.Items)
	assert.NotNil(t, out.Items)
	assert.Equal(t, 0, out.Page.Total)
	assert.Equal(t, maxPageLimit, out.Page.Limit)
	assert.True(t, repo.lastFilter.Desc)
}

func TestTiendaDelete(t *testing.T) {
	repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "A", Estado: entity.EstadoTiendaActivo})
	uc := NewTiendaUseCase(repo, nil, logger.Nop())

	require.NoError(t, uc.Delete(context.Background(), "t-1"))
	assert.ErrorIs(t, uc.Delete(context.Background(), "t-1"), domain.ErrNotFound)
}

func TestTiendaCreate_UsaTransaccionPorNombre(t *testing.T) {
	repo := newFakeTiendaRepo(&entity.Tienda{ID: "t-1", Nombre: "BELLA", Estado: entity.EstadoTiendaActivo})
	tx := &fakeTiendaTx{repo: repo}
	uc := NewTiendaUseCase(repo, tx, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: "all stars"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateTiendaRequest{Nombre: "bella"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	assert.Equal(t, []string{"ALL STARS", "BELLA"}, tx.claves)
	assert.Equal(t, 1, repo.createCalls)
}
