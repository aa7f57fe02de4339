package order

import (
	"context"
	"errors"
	"fmt"

	"grocery-be/internal/address"
	"grocery-be/internal/cart"
	"grocery-be/internal/config"
	"grocery-be/internal/logger"
	"grocery-be/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*Order, int64, error)
	Transition(ctx context.Context, params TransitionParams) (*Order, error)

	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	AdminListOrders(ctx context.Context, status *Status, limit, offset int32) ([]*Order, int64, error)
}

type service struct {
	repo        Repository
	cartRepo    cart.Repository
	addressRepo address.Repository
	opts        config.CheckoutOptions
	metrics     *metrics.Store
}

func NewService(
	repo Repository,
	cartRepo cart.Repository,
	addressRepo address.Repository,
	opts config.CheckoutOptions,
	m *metrics.Store,
) Service {
	return &service{
		repo:        repo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		opts:        opts,
		metrics:     m,
	}
}

// Checkout turns the user's cart into an order. All validation happens up
// front; persistence is a single transaction, so a failed checkout leaves
// the cart untouched.
func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("user_id", params.UserID.String()),
	)

	// Replay: the same idempotency key returns the original order.
	if params.IdempotencyKey != nil && *params.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, params.UserID, *params.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.Info("checkout replayed by idempotency key",
				zap.String("order_id", existing.ID.String()),
			)
			return existing, nil
		}
	}

	addr, err := s.addressRepo.GetVerified(ctx, params.AddressID, params.UserID)
	if err != nil {
		s.metrics.CheckoutFailures.WithLabelValues("address").Inc()
		return nil, err
	}

	lines, err := s.cartRepo.GetLines(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		s.metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return nil, ErrCartEmpty
	}

	for _, l := range lines {
		if !l.IsActive {
			s.metrics.CheckoutFailures.WithLabelValues("inactive_product").Inc()
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, l.Name)
		}
	}

	sp, err := s.addressRepo.FindServicePostcode(ctx, addr.Postcode)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		s.metrics.CheckoutFailures.WithLabelValues("postcode").Inc()
		return nil, fmt.Errorf("%w: %s", ErrPostcodeNotServed, addr.Postcode)
	}

	subtotal := decimal.Zero
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		lineTotal := l.Price.Mul(decimal.NewFromInt32(l.Quantity))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
			LineTotal:   lineTotal,
		})
	}

	total := subtotal.Add(s.opts.DeliveryFee)
	if total.LessThan(s.opts.MinOrderAmount) {
		s.metrics.CheckoutFailures.WithLabelValues("below_minimum").Inc()
		return nil, fmt.Errorf("%w: total %s %s, minimum %s %s",
			ErrBelowMinimum,
			total.StringFixed(2), s.opts.Currency,
			s.opts.MinOrderAmount.StringFixed(2), s.opts.Currency,
		)
	}

	o, err := s.repo.CreateOrder(ctx, CreateOrderParams{
		UserID:          params.UserID,
		AddressID:       addr.ID,
		AddressSnapshot: addr.ToSnapshot(),
		Subtotal:        subtotal,
		DeliveryFee:     s.opts.DeliveryFee,
		Total:           total,
		Notes:           params.Notes,
		IdempotencyKey:  params.IdempotencyKey,
		Items:           items,
	})
	if err != nil {
		// Two requests with the same key raced past the replay check
		// above; the loser returns the winner's order.
		if errors.Is(err, ErrDuplicateCheckout) && params.IdempotencyKey != nil {
			existing, findErr := s.repo.FindByIdempotencyKey(ctx, params.UserID, *params.IdempotencyKey)
			if findErr == nil && existing != nil {
				log.Info("checkout replayed after concurrent duplicate",
					zap.String("order_id", existing.ID.String()),
				)
				return existing, nil
			}
		}
		s.metrics.CheckoutFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	log.Info("checkout completed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*Order, error) {
	return s.repo.GetByIDForUser(ctx, orderID, userID)
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*Order, int64, error) {
	return s.repo.List(ctx, ListOptions{UserID: &userID, Limit: limit, Offset: offset})
}

// Transition moves an order along the lifecycle. The check against the
// persisted status plus the repository's optimistic guard make concurrent
// transitions safe: the loser gets ErrStatusChanged.
func (s *service) Transition(ctx context.Context, params TransitionParams) (*Order, error) {
	if !params.Next.IsValid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(params.Next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, params.Next)
	}

	if err := s.repo.UpdateStatus(ctx, params, current.Status); err != nil {
		return nil, err
	}

	s.metrics.StatusTransitions.WithLabelValues(string(current.Status), string(params.Next)).Inc()

	return s.repo.GetByID(ctx, params.OrderID)
}

func (s *service) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *service) AdminListOrders(ctx context.Context, status *Status, limit, offset int32) ([]*Order, int64, error) {
	if status != nil && !status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, ListOptions{Status: status, Limit: limit, Offset: offset})
}
