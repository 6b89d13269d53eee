package user

import (
	"context"
	"database/sql"
	"errors"

	"neonix-orders/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FindByID returns (nil, nil) when no user exists with the id.
	FindByID(ctx context.Context, id uint) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	const q = `
		SELECT id, name, email, phone, role, created_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query user",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}
