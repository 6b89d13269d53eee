package order

import (
	"context"
	"time"

	"neonix-orders/internal/address"
	"neonix-orders/internal/logger"
	"neonix-orders/internal/payment"
	"neonix-orders/internal/user"

	"go.uber.org/zap"
)

// Service is the order workflow. It holds no state of its own; every
// call goes straight through to the stores.
type Service interface {
	List(ctx context.Context) ([]*Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	Create(ctx context.Context, o *Order) (*Order, error)
	Update(ctx context.Context, id uint, in *Order) (*Order, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
}

type service struct {
	repo      Repository
	users     user.Repository
	addresses address.Repository
	payments  payment.Repository
}

func NewService(repo Repository, users user.Repository, addresses address.Repository, payments payment.Repository) Service {
	return &service{
		repo:      repo,
		users:     users,
		addresses: addresses,
		payments:  payments,
	}
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// Create validates the user reference, enriches the optional
// associations, stamps the automatic fields and saves the aggregate.
func (s *service) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	// An order for a nonexistent user is never persisted.
	if o.User == nil || o.User.ID == 0 {
		log.Warn("create rejected: missing user reference")
		return nil, ErrUserRequired
	}

	u, err := s.users.FindByID(ctx, o.User.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		log.Warn("create rejected: user does not exist",
			zap.Uint("user_id", o.User.ID),
		)
		return nil, ErrUserNotFound
	}
	o.User = u

	// Address and payment method are optional enrichments, not
	// validated requirements: a lookup miss keeps the supplied value.
	o.ShippingAddress, err = s.resolveAddress(ctx, o.ShippingAddress, o.ShippingAddress)
	if err != nil {
		return nil, err
	}
	o.PaymentMethod, err = s.resolvePayment(ctx, o.PaymentMethod, o.PaymentMethod)
	if err != nil {
		return nil, err
	}

	o.OrderDate = time.Now()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	o.Status = StatusPending

	saved, err := s.repo.Save(ctx, o)
	if err != nil {
		log.Error("failed to save order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Uint("order_id", saved.ID),
		zap.Uint("user_id", saved.User.ID),
		zap.Int("detail_count", len(saved.Details)),
	)

	return saved, nil
}

// Update overwrites the caller-owned fields unconditionally and applies
// the tri-state address/payment rule. The user reference is never read
// from the input.
func (s *service) Update(ctx context.Context, id uint, in *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("order_id", id),
	)

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}

	existing.ShippingNumber = in.ShippingNumber
	existing.DeliveryDate = in.DeliveryDate
	existing.TotalAmount = in.TotalAmount
	existing.Status = in.Status
	existing.UpdatedAt = time.Now()

	// Explicit null clears the association; a reference without an id
	// leaves the prior value untouched.
	if in.ShippingAddress == nil {
		existing.ShippingAddress = nil
	} else {
		existing.ShippingAddress, err = s.resolveAddress(ctx, in.ShippingAddress, existing.ShippingAddress)
		if err != nil {
			return nil, err
		}
	}

	if in.PaymentMethod == nil {
		existing.PaymentMethod = nil
	} else {
		existing.PaymentMethod, err = s.resolvePayment(ctx, in.PaymentMethod, existing.PaymentMethod)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		log.Error("failed to save order", zap.Error(err))
		return nil, err
	}

	log.Info("order updated", zap.String("status", string(updated.Status)))

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrOrderNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order deleted", zap.Uint("order_id", id))
	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// resolveAddress is the shared resolve-or-keep rule: a reference that
// carries an id is looked up and replaced by the store copy on a hit;
// anything else returns the fallback unchanged.
func (s *service) resolveAddress(ctx context.Context, ref, fallback *address.Address) (*address.Address, error) {
	if ref == nil || ref.ID == 0 {
		return fallback, nil
	}

	a, err := s.addresses.FindByID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return fallback, nil
	}
	return a, nil
}

func (s *service) resolvePayment(ctx context.Context, ref, fallback *payment.PaymentMethod) (*payment.PaymentMethod, error) {
	if ref == nil || ref.ID == 0 {
		return fallback, nil
	}

	p, err := s.payments.FindByID(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return fallback, nil
	}
	return p, nil
}
