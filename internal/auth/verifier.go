package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrUnknownProvider = errors.New("unknown auth provider")
)

// Identity is what a verified credential resolves to. The provider UID is
// opaque to the rest of the system.
type Identity struct {
	ProviderUID string
	Email       string
	Phone       string
	Name        string
}

// TokenVerifier verifies an inbound credential and resolves it to an
// identity. Implementations are selected by configuration, never by
// inspecting the token at runtime.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier returns the verifier configured for the deployment.
func NewVerifier(provider, jwtSecret string) (TokenVerifier, error) {
	switch provider {
	case "mock":
		return &MockVerifier{}, nil
	case "jwt":
		if jwtSecret == "" {
			return nil, errors.New("JWT_SECRET is not set")
		}
		return &JWTVerifier{secret: []byte(jwtSecret)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// MockVerifier accepts development tokens of the form
// "dev_email:user@example.com" or "dev_phone:+4512345678".
type MockVerifier struct{}

func (v *MockVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if !strings.HasPrefix(token, "dev_") {
		return nil, ErrInvalidToken
	}

	parts := strings.SplitN(strings.TrimPrefix(token, "dev_"), ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, ErrInvalidToken
	}

	kind, value := parts[0], parts[1]
	uid := "dev_" + strings.NewReplacer("@", "_", "+", "").Replace(value)

	identity := &Identity{ProviderUID: uid, Name: "Dev User"}
	switch kind {
	case "email":
		identity.Email = value
	case "phone":
		identity.Phone = value
	default:
		return nil, ErrInvalidToken
	}

	return identity, nil
}

// ProviderClaims is the claim set the JWT verifier expects from the identity
// provider.
type ProviderClaims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 provider tokens.
type JWTVerifier struct {
	secret []byte
}

func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (*Identity, error) {
	claims := &ProviderClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		ProviderUID: claims.Subject,
		Email:       claims.Email,
		Phone:       claims.Phone,
		Name:        claims.Name,
	}, nil
}
