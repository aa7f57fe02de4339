package address

import (
	"context"
	"regexp"

	"grocery-be/internal/auth"
	"grocery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Danish postcodes are four digits.
var postcodeRegex = regexp.MustCompile(`^\d{4}$`)

// Service defines the business logic for delivery addresses and the
// service-area allowlist.
type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Get(ctx context.Context, addressID uuid.UUID) (*Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Update(ctx context.Context, input UpdateAddressInput) (*Address, error)
	Delete(ctx context.Context, addressID uuid.UUID) error

	// VerifyPostcode reports whether the postcode is serviceable and, when
	// it is, the city it belongs to.
	VerifyPostcode(ctx context.Context, postcode string) (bool, string, error)

	// Admin surface.
	ListServicePostcodes(ctx context.Context) ([]*ServicePostcode, error)
	AddServicePostcode(ctx context.Context, postcode, cityName string) (*ServicePostcode, error)
	RemoveServicePostcode(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(ctx context.Context, addressID uuid.UUID) (*Address, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	return s.repo.GetByID(ctx, addressID, userID)
}

func (s *service) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
		zap.String("postcode", input.Postcode),
	)

	if !postcodeRegex.MatchString(input.Postcode) {
		return nil, ErrInvalidPostcode
	}

	sp, err := s.repo.FindServicePostcode(ctx, input.Postcode)
	if err != nil {
		log.Error("failed to check service postcode", zap.Error(err))
		return nil, err
	}
	if sp == nil {
		log.Warn("postcode outside service area")
		return nil, ErrPostcodeNotServed
	}

	// The allowlist is authoritative for the city name.
	input.City = sp.CityName

	if input.IsDefault {
		if err := s.repo.UnsetDefaults(ctx, userID); err != nil {
			return nil, err
		}
	}

	// Verified because the postcode is on the allowlist.
	return s.repo.Create(ctx, userID, input, true)
}

func (s *service) Update(ctx context.Context, input UpdateAddressInput) (*Address, error) {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	if input.IsDefault != nil && *input.IsDefault {
		if err := s.repo.UnsetDefaults(ctx, userID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, userID, input)
}

func (s *service) Delete(ctx context.Context, addressID uuid.UUID) error {
	userID, ok := auth.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}

	return s.repo.Delete(ctx, addressID, userID)
}

func (s *service) VerifyPostcode(ctx context.Context, postcode string) (bool, string, error) {
	if !postcodeRegex.MatchString(postcode) {
		return false, "", ErrInvalidPostcode
	}

	sp, err := s.repo.FindServicePostcode(ctx, postcode)
	if err != nil {
		return false, "", err
	}
	if sp == nil {
		return false, "", nil
	}
	return true, sp.CityName, nil
}

func (s *service) ListServicePostcodes(ctx context.Context) ([]*ServicePostcode, error) {
	return s.repo.ListServicePostcodes(ctx)
}

func (s *service) AddServicePostcode(ctx context.Context, postcode, cityName string) (*ServicePostcode, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "AddServicePostcode"),
		zap.String("postcode", postcode),
	)

	if !postcodeRegex.MatchString(postcode) {
		return nil, ErrInvalidPostcode
	}

	sp, err := s.repo.AddServicePostcode(ctx, postcode, cityName)
	if err != nil {
		log.Error("failed to add service postcode", zap.Error(err))
		return nil, err
	}

	log.Info("service postcode added")
	return sp, nil
}

func (s *service) RemoveServicePostcode(ctx context.Context, id int64) error {
	return s.repo.RemoveServicePostcode(ctx, id)
}
