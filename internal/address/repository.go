package address

import (
	"context"
	"database/sql"

	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

const addressColumns = `
	id, user_id, street, building, floor, apartment, postcode, city,
	is_default, is_verified, created_at, updated_at`

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Address, error)
	GetByID(ctx context.Context, addressID, userID uuid.UUID) (*Address, error)
	GetVerified(ctx context.Context, addressID, userID uuid.UUID) (*Address, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateAddressInput, verified bool) (*Address, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID, userID uuid.UUID) error
	UnsetDefaults(ctx context.Context, userID uuid.UUID) error

	// Service-area allowlist.
	FindServicePostcode(ctx context.Context, postcode string) (*ServicePostcode, error)
	ListServicePostcodes(ctx context.Context) ([]*ServicePostcode, error)
	AddServicePostcode(ctx context.Context, postcode, cityName string) (*ServicePostcode, error)
	RemoveServicePostcode(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func scanAddress(scan func(dest ...any) error) (*Address, error) {
	var a Address
	err := scan(
		&a.ID, &a.UserID, &a.Street, &a.Building, &a.Floor, &a.Apartment,
		&a.Postcode, &a.City, &a.IsDefault, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, addressID, userID uuid.UUID) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE id = $1 AND user_id = $2
	`, addressID, userID).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	return a, err
}

func (r *repository) GetVerified(ctx context.Context, addressID, userID uuid.UUID) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, `
		SELECT`+addressColumns+`
		FROM addresses
		WHERE id = $1 AND user_id = $2 AND is_verified = TRUE
	`, addressID, userID).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, userID uuid.UUID, input CreateAddressInput, verified bool) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("user_id", userID.String()),
	)

	a, err := scanAddress(r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (
			id, user_id, street, building, floor, apartment,
			postcode, city, is_default, is_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING`+addressColumns+`
	`,
		uuid.New(), userID, input.Street, input.Building, input.Floor,
		input.Apartment, input.Postcode, input.City, input.IsDefault, verified,
	).Scan)
	if err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", a.ID.String()))
	return a, nil
}

func (r *repository) Update(ctx context.Context, userID uuid.UUID, input UpdateAddressInput) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, `
		UPDATE addresses
		SET street     = COALESCE($1, street),
		    building   = COALESCE($2, building),
		    floor      = COALESCE($3, floor),
		    apartment  = COALESCE($4, apartment),
		    is_default = COALESCE($5, is_default),
		    updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING`+addressColumns+`
	`,
		input.Street, input.Building, input.Floor, input.Apartment,
		input.IsDefault, input.AddressID, userID,
	).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	return a, err
}

func (r *repository) Delete(ctx context.Context, addressID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM addresses
		WHERE id = $1 AND user_id = $2
	`, addressID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) UnsetDefaults(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default = TRUE
	`, userID)
	return err
}

func (r *repository) FindServicePostcode(ctx context.Context, postcode string) (*ServicePostcode, error) {
	var sp ServicePostcode
	err := r.db.QueryRowContext(ctx, `
		SELECT id, postcode, city_name, is_active, created_at
		FROM service_postcodes
		WHERE postcode = $1 AND is_active = TRUE
	`, postcode).Scan(&sp.ID, &sp.Postcode, &sp.CityName, &sp.IsActive, &sp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *repository) ListServicePostcodes(ctx context.Context) ([]*ServicePostcode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, postcode, city_name, is_active, created_at
		FROM service_postcodes
		ORDER BY postcode
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*ServicePostcode, 0)
	for rows.Next() {
		var sp ServicePostcode
		if err := rows.Scan(&sp.ID, &sp.Postcode, &sp.CityName, &sp.IsActive, &sp.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &sp)
	}
	return result, rows.Err()
}

func (r *repository) AddServicePostcode(ctx context.Context, postcode, cityName string) (*ServicePostcode, error) {
	var sp ServicePostcode
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO service_postcodes (postcode, city_name, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, postcode, city_name, is_active, created_at
	`, postcode, cityName).Scan(&sp.ID, &sp.Postcode, &sp.CityName, &sp.IsActive, &sp.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicatePostcode
		}
		return nil, err
	}
	return &sp, nil
}

func (r *repository) RemoveServicePostcode(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM service_postcodes WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPostcodeNotFound
	}
	return nil
}
