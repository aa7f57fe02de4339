package user

import (
	"context"
	"database/sql"

	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, providerUID string, email, phone, displayName *string) (*User, error)
	FindByProviderUID(ctx context.Context, providerUID string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, providerUID string, email, phone, displayName *string) (*User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, provider_uid, email, phone, display_name, last_login_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, provider_uid, email, phone, display_name, last_login_at, created_at, updated_at
	`, uuid.New(), providerUID, email, phone, displayName).Scan(
		&u.ID, &u.ProviderUID, &u.Email, &u.Phone, &u.DisplayName,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("provider_uid", providerUID),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByProviderUID(ctx context.Context, providerUID string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider_uid, email, phone, display_name, last_login_at, created_at, updated_at
		FROM users
		WHERE provider_uid = $1
	`, providerUID).Scan(
		&u.ID, &u.ProviderUID, &u.Email, &u.Phone, &u.DisplayName,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider_uid, email, phone, display_name, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.ProviderUID, &u.Email, &u.Phone, &u.DisplayName,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1
	`, id)
	return err
}
