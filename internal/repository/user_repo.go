package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"inventario-api/internal/model"
	"inventario-api/pkg/apierror"
)

// UserRepository is the generic repository specialized for usuarios, plus the
// username lookup the credential service needs.
type UserRepository struct {
	*Repository[model.Usuario, model.UsuarioPatch, int64]
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{
		Repository: New(db, Usuarios()),
		db:         db,
	}
}

// FindByUsername is a case-sensitive exact match.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.Usuario, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, password, contacto_id FROM usuarios WHERE username = $1`, username)
	if err != nil {
		return model.Usuario{}, fmt.Errorf("find usuario by username: %w", err)
	}

	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Usuario])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Usuario{}, apierror.NotFound("usuario", username)
	}
	if err != nil {
		return model.Usuario{}, fmt.Errorf("find usuario by username: %w", err)
	}

	return u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count usuarios: %w", err)
	}
	return count, nil
}
