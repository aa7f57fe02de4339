package cart

import (
	"context"

	"grocery-be/internal/logger"
	"grocery-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateItemParams) error
	RemoveFromCart(ctx context.Context, params UpdateItemParams) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	GetCart(ctx context.Context, userID uuid.UUID) (*View, error)
	Sync(ctx context.Context, userID uuid.UUID, guestItems []GuestItem) (*View, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddToCart adds a product to a user's cart, merging quantities when the
// product is already carted.
func (s *service) AddToCart(ctx context.Context, params AddItemParams) (*CartItem, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// Only active products may be carted.
	p, err := s.productRepo.GetByID(ctx, product.GetOptions{
		ProductID:  params.ProductID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, params.UserID, params.ProductID, params.Quantity, p.Price)
	}
	return s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+params.Quantity)
}

// UpdateQuantity sets the quantity of a carted product. Zero removes the line.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateItemParams) error {
	if params.Quantity < 0 {
		return ErrInvalidQuantity
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	if params.Quantity == 0 {
		return s.repo.RemoveItem(ctx, params.UserID, params.ProductID)
	}

	_, err = s.repo.UpdateItemQuantity(ctx, existing.ID, params.Quantity)
	return err
}

func (s *service) RemoveFromCart(ctx context.Context, params UpdateItemParams) error {
	return s.repo.RemoveItem(ctx, params.UserID, params.ProductID)
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*View, error) {
	lines, err := s.repo.GetLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildView(lines), nil
}

// Sync reconciles a client-held guest cart into the user's cart on login.
// When both carts hold the same product, the higher quantity wins; unknown or
// inactive products are skipped.
func (s *service) Sync(ctx context.Context, userID uuid.UUID, guestItems []GuestItem) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Sync"),
		zap.String("user_id", userID.String()),
		zap.Int("guest_items", len(guestItems)),
	)

	for _, gi := range guestItems {
		if gi.Quantity <= 0 {
			continue
		}

		p, err := s.productRepo.GetByID(ctx, product.GetOptions{
			ProductID:  gi.ProductID,
			OnlyActive: true,
		})
		if err != nil {
			return nil, err
		}
		if p == nil {
			log.Debug("skipping unknown guest product",
				zap.String("product_id", gi.ProductID.String()),
			)
			continue
		}

		existing, err := s.repo.GetItemByUserAndProduct(ctx, userID, gi.ProductID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			if _, err := s.repo.CreateItem(ctx, userID, gi.ProductID, gi.Quantity, p.Price); err != nil {
				return nil, err
			}
			continue
		}

		if gi.Quantity > existing.Quantity {
			if _, err := s.repo.UpdateItemQuantity(ctx, existing.ID, gi.Quantity); err != nil {
				return nil, err
			}
		}
	}

	log.Info("guest cart synced")
	return s.GetCart(ctx, userID)
}

func buildView(lines []Line) *View {
	view := &View{
		Lines:    lines,
		Subtotal: decimal.Zero,
	}
	for _, l := range lines {
		view.Subtotal = view.Subtotal.Add(l.LineTotal)
		view.ItemCount += l.Quantity
	}
	return view
}
