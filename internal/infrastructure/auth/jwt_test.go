package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	token, err := manager.Generate("owner-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-123", claims.OwnerID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	expiredClaims := auth.Claims{
		OwnerID: "owner-expired",
		Email:   "expired@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.Verify(expiredToken)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	_, err = otherManager.Verify(expiredToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = manager.Verify("not-a-token")
	assert.Error(t, err)
}
