package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-that-is-long-enough",
		TokenExpiration: time.Hour,
		Issuer:          "storefront-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Run("round trips customer token", func(t *testing.T) {
		service := newTestService()
		userID := uuid.New()

		token, err := service.GenerateToken(userID, RoleCustomer)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, RoleCustomer, claims.Role)
		assert.False(t, claims.IsAdmin())

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("admin claims report admin", func(t *testing.T) {
		service := newTestService()

		token, err := service.GenerateToken(uuid.New(), RoleAdmin)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("rejects unknown role at generation", func(t *testing.T) {
		service := newTestService()

		_, err := service.GenerateToken(uuid.New(), Role("SUPERUSER"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestValidateTokenFailures(t *testing.T) {
	t.Run("rejects garbage token", func(t *testing.T) {
		service := newTestService()

		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		service := newTestService()
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-secret-key",
			TokenExpiration: time.Hour,
			Issuer:          "storefront-test",
		})

		token, err := other.GenerateToken(uuid.New(), RoleCustomer)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		service := NewJWTService(config.JWTConfig{
			Secret:          "test-secret-key-that-is-long-enough",
			TokenExpiration: -time.Minute,
			Issuer:          "storefront-test",
		})

		token, err := service.GenerateToken(uuid.New(), RoleCustomer)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token with missing user id", func(t *testing.T) {
		service := newTestService()

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			Role: RoleCustomer,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough"))
		require.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("rejects token with unknown role", func(t *testing.T) {
		service := newTestService()

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			UserID: uuid.New().String(),
			Role:   Role("ROOT"),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough"))
		require.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("customer").IsValid())
}
