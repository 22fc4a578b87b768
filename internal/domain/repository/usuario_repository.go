package repository

import (
	"context"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
}
