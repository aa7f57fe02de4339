package user

import (
	"context"

	"grocery-be/internal/auth"
	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// GetOrCreate resolves a verified identity to a user row, creating it on
	// first login and refreshing last_login_at otherwise.
	GetOrCreate(ctx context.Context, identity *auth.Identity) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrCreate(ctx context.Context, identity *auth.Identity) (*User, error) {
	if identity == nil || identity.ProviderUID == "" {
		return nil, ErrMissingIdentity
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrCreate"),
		zap.String("provider_uid", identity.ProviderUID),
	)

	u, err := s.repo.FindByProviderUID(ctx, identity.ProviderUID)
	if err != nil {
		log.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	if u != nil {
		if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
			log.Warn("failed to update last login", zap.Error(err))
		}
		return u, nil
	}

	u, err = s.repo.Create(ctx,
		identity.ProviderUID,
		optional(identity.Email),
		optional(identity.Phone),
		optional(identity.Name),
	)
	if err != nil {
		return nil, err
	}

	log.Info("user created", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
