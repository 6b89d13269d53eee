package payment

import (
	"context"
	"database/sql"
	"errors"

	"neonix-orders/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FindByID returns (nil, nil) when no payment method exists with the id.
	FindByID(ctx context.Context, id uint) (*PaymentMethod, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uint) (*PaymentMethod, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "PaymentMethod"),
		zap.String("method", "FindByID"),
		zap.Uint("payment_method_id", id),
	)

	const q = `
		SELECT id, user_id, type, provider, last4, is_default
		FROM payment_methods
		WHERE id = $1
		LIMIT 1
	`

	var p PaymentMethod
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.UserID, &p.Type, &p.Provider, &p.Last4, &p.IsDefault,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &p, nil
}
