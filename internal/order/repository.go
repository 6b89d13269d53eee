package order

import (
	"context"
	"database/sql"
	"errors"

	"neonix-orders/internal/address"
	"neonix-orders/internal/logger"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*Order, error)
	// FindByID returns (nil, nil) when no order exists with the id.
	FindByID(ctx context.Context, id uint) (*Order, error)
	// Save inserts when the order has no id yet, updates otherwise.
	// Inserts cascade to the details in the same transaction.
	Save(ctx context.Context, o *Order) (*Order, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// DeleteByID removes the order and its details in one transaction.
	DeleteByID(ctx context.Context, id uint) error
	FindByUserID(ctx context.Context, userID uint) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrders = `
	SELECT
		o.id, o.status, o.shipping_number, o.delivery_date, o.total_amount,
		o.order_date, o.created_at, o.updated_at,
		o.shipping_address_id, o.payment_method_id,
		u.id, u.name, u.email, u.phone, u.role, u.created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, sql.NullInt64, sql.NullInt64, error) {
	var o Order
	var u user.User
	var addrID, payID sql.NullInt64

	err := row.Scan(
		&o.ID, &o.Status, &o.ShippingNumber, &o.DeliveryDate, &o.TotalAmount,
		&o.OrderDate, &o.CreatedAt, &o.UpdatedAt,
		&addrID, &payID,
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		return nil, addrID, payID, err
	}

	o.User = &u
	return &o, addrID, payID, nil
}

func (r *repository) FindAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrders+` ORDER BY o.id`)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrders+` WHERE o.id = $1`, id)

	o, addrID, payID, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query order",
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if err := r.attachReferences(ctx, o, addrID, payID); err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, []*Order{o}); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrders+` WHERE o.user_id = $1 ORDER BY o.id`, userID)
}

func (r *repository) queryOrders(ctx context.Context, q string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "queryOrders"),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	type pendingRefs struct {
		addrID sql.NullInt64
		payID  sql.NullInt64
	}

	orders := []*Order{}
	var refs []pendingRefs

	for rows.Next() {
		o, addrID, payID, err := scanOrder(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		refs = append(refs, pendingRefs{addrID, payID})
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	for i, o := range orders {
		if err := r.attachReferences(ctx, o, refs[i].addrID, refs[i].payID); err != nil {
			return nil, err
		}
	}
	if err := r.loadDetails(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachReferences loads the optional address and payment method rows.
// A dangling id (row removed since the order was written) leaves the
// field nil rather than failing the read.
func (r *repository) attachReferences(ctx context.Context, o *Order, addrID, payID sql.NullInt64) error {
	if addrID.Valid {
		var a address.Address
		err := r.db.QueryRowContext(ctx, `
			SELECT id, user_id, street1, street2, city, province, postal_code, country, is_default
			FROM addresses
			WHERE id = $1
		`, addrID.Int64).Scan(
			&a.ID, &a.UserID, &a.Street1, &a.Street2,
			&a.City, &a.Province, &a.Postal, &a.Country, &a.IsDefault,
		)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			o.ShippingAddress = &a
		}
	}

	if payID.Valid {
		var p payment.PaymentMethod
		err := r.db.QueryRowContext(ctx, `
			SELECT id, user_id, type, provider, last4, is_default
			FROM payment_methods
			WHERE id = $1
		`, payID.Int64).Scan(
			&p.ID, &p.UserID, &p.Type, &p.Provider, &p.Last4, &p.IsDefault,
		)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			o.PaymentMethod = &p
		}
	}

	return nil
}

func (r *repository) loadDetails(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_details
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.ProductID, &d.ProductName, &d.Quantity, &d.Price,
		); err != nil {
			return err
		}
		if o, ok := byID[d.OrderID]; ok {
			o.Details = append(o.Details, d)
		}
	}

	return rows.Err()
}

func (r *repository) Save(ctx context.Context, o *Order) (*Order, error) {
	if o.ID == 0 {
		return r.insert(ctx, o)
	}
	return r.update(ctx, o)
}

// addressRefID and paymentRefID turn an optional reference into a
// nullable column value. A reference without an id is stored as NULL;
// the in-memory aggregate keeps the supplied object either way.
func addressRefID(a *address.Address) any {
	if a == nil || a.ID == 0 {
		return nil
	}
	return int64(a.ID)
}

func paymentRefID(p *payment.PaymentMethod) any {
	if p == nil || p.ID == 0 {
		return nil
	}
	return int64(p.ID)
}

func (r *repository) insert(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Order"),
		zap.String("method", "insert"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, shipping_address_id, payment_method_id,
			status, shipping_number, delivery_date, total_amount,
			order_date, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		o.User.ID,
		addressRefID(o.ShippingAddress),
		paymentRefID(o.PaymentMethod),
		o.Status,
		o.ShippingNumber,
		o.DeliveryDate,
		o.TotalAmount,
		o.OrderDate,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	// Cascade: details get their back-reference once the id is known.
	for i := range o.Details {
		o.Details[i].OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_details (order_id, product_id, product_name, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`,
			o.Details[i].OrderID,
			o.Details[i].ProductID,
			o.Details[i].ProductName,
			o.Details[i].Quantity,
			o.Details[i].Price,
		).Scan(&o.Details[i].ID)
		if err != nil {
			log.Error("failed to insert order detail",
				zap.Int("detail_index", i),
				zap.Error(err),
			)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order insert", zap.Error(err))
		return nil, err
	}

	return o, nil
}

// update rewrites the order row only. Details are never individually
// mutated through this repository.
func (r *repository) update(ctx context.Context, o *Order) (*Order, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			shipping_address_id = $1,
			payment_method_id = $2,
			status = $3,
			shipping_number = $4,
			delivery_date = $5,
			total_amount = $6,
			updated_at = $7
		WHERE id = $8
	`,
		addressRefID(o.ShippingAddress),
		paymentRefID(o.PaymentMethod),
		o.Status,
		o.ShippingNumber,
		o.DeliveryDate,
		o.TotalAmount,
		o.UpdatedAt,
		o.ID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update order",
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
		return nil, err
	}

	return o, nil
}

func (r *repository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *repository) DeleteByID(ctx context.Context, id uint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_details WHERE order_id = $1`, id,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM orders WHERE id = $1`, id,
	); err != nil {
		return err
	}

	return tx.Commit()
}
