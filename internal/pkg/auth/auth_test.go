package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/benchtrack/internal/app/models"
)

func newService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "benchtrack",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(time.Minute)
	consultantID := int64(12)
	user := &models.User{ID: 3, Email: "priya@example.com", Role: models.RoleConsultant}

	pair, err := svc.GenerateTokenPair(user, &consultantID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 60, pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "consultant", claims.Role)
	require.NotNil(t, claims.ConsultantID)
	assert.Equal(t, int64(12), *claims.ConsultantID)
	assert.False(t, claims.IsAdmin())
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService(-time.Minute)
	pair, err := svc.GenerateTokenPair(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin}, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecretOrIssuer(t *testing.T) {
	pair, err := newService(time.Minute).GenerateTokenPair(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin}, nil)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Minute, TokenIssuer: "benchtrack"})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := &Claims{UserID: 1, Email: "a@example.com", RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = newService(time.Minute).ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswords(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	defer func() { BcryptCost = 12 }()

	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cretpass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("abcdefg1"))
	assert.ErrorIs(t, ValidatePasswordStrength("abc1"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordStrength("abcdefgh"), ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordStrength("12345678"), ErrWeakPassword)
}
