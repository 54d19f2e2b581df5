package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", TokenIssuer: "campusconnect"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateToken(42)
	require.NoError(t, err)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService()
	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(1)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestValidateTokenRejectsForeignSignatureAndAlgorithm(t *testing.T) {
	svc := newTestService()

	other := NewJWTService(JWTConfig{SecretKey: "other-secret"})
	token, _, err := other.GenerateToken(1)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	_, err = svc.ValidateToken("")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = ExtractBearerToken("")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestHashPasswordUsesCostTen(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
