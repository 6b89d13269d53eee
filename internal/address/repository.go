package address

import (
	"context"
	"database/sql"
	"errors"

	"neonix-orders/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FindByID returns (nil, nil) when no address exists with the id.
	FindByID(ctx context.Context, id uint) (*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "FindByID"),
		zap.Uint("address_id", id),
	)

	const q = `
		SELECT
			id, user_id,
			street1, street2,
			city, province, postal_code, country,
			is_default
		FROM addresses
		WHERE id = $1
		LIMIT 1
	`

	var a Address
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.UserID,
		&a.Street1, &a.Street2,
		&a.City, &a.Province, &a.Postal, &a.Country,
		&a.IsDefault,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &a, nil
}
