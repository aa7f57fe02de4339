package product

import (
	"context"
	"strings"

	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for the catalog.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error)

	// Admin surface.
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error)
	SetAvailability(ctx context.Context, id uuid.UUID, active bool) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, GetOptions{ProductID: id, OnlyActive: true})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("name", params.Name),
	)

	if !params.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if params.Slug == "" {
		params.Slug = slugify(params.Name)
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, params UpdateProductParams) (*Product, error) {
	if params.Price != nil && !params.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	return s.repo.Update(ctx, params)
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, active bool) (*Product, error) {
	return s.repo.Update(ctx, UpdateProductParams{ProductID: id, IsActive: &active})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.FieldsFunc(slug, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}), "-")
	return slug
}
