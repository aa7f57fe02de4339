package user

import (
	"context"
	"errors"
	"testing"

	"grocery-be/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, providerUID string, email, phone, displayName *string) (*User, error) {
	args := m.Called(ctx, providerUID, email, phone, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByProviderUID(ctx context.Context, providerUID string) (*User, error) {
	args := m.Called(ctx, providerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	identity := &auth.Identity{
		ProviderUID: "dev_test_example.com",
		Email:       "test@example.com",
		Name:        "Dev User",
	}

	t.Run("Existing user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		existing := &User{ID: uuid.New(), ProviderUID: identity.ProviderUID}
		mockRepo.On("FindByProviderUID", ctx, identity.ProviderUID).Return(existing, nil).Once()
		mockRepo.On("TouchLastLogin", ctx, existing.ID).Return(nil).Once()

		u, err := svc.GetOrCreate(ctx, identity)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("New user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		created := &User{ID: uuid.New(), ProviderUID: identity.ProviderUID}
		mockRepo.On("FindByProviderUID", ctx, identity.ProviderUID).Return(nil, nil).Once()
		mockRepo.On("Create", ctx, identity.ProviderUID, mock.Anything, mock.Anything, mock.Anything).
			Return(created, nil).Once()

		u, err := svc.GetOrCreate(ctx, identity)

		assert.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Last login failure is non-fatal", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		existing := &User{ID: uuid.New(), ProviderUID: identity.ProviderUID}
		mockRepo.On("FindByProviderUID", ctx, identity.ProviderUID).Return(existing, nil).Once()
		mockRepo.On("TouchLastLogin", ctx, existing.ID).Return(errors.New("db error")).Once()

		u, err := svc.GetOrCreate(ctx, identity)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)
	})

	t.Run("Missing identity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.GetOrCreate(ctx, nil)
		assert.ErrorIs(t, err, ErrMissingIdentity)

		_, err = svc.GetOrCreate(ctx, &auth.Identity{})
		assert.ErrorIs(t, err, ErrMissingIdentity)
	})

	t.Run("Lookup error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expectedErr := errors.New("db error")
		mockRepo.On("FindByProviderUID", ctx, identity.ProviderUID).Return(nil, expectedErr).Once()

		_, err := svc.GetOrCreate(ctx, identity)
		assert.Equal(t, expectedErr, err)
	})
}
