package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id::text, email, password_hash, nombre, rol, activo, created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre la tabla usuarios.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// FindByEmail busca por email sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find usuario by email: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Role, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
