package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari10031/CodeSync-sub001/internal/config"
)

const testSigningSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

// newClockedJWTService pins the service to a settable instant so expiry is
// tested by moving the clock, not by sleeping.
func newClockedJWTService(expirationHours int) (*JWTService, *time.Time) {
	s := NewJWTService(&config.JWTConfig{
		Secret:          testSigningSecret,
		ExpirationHours: expirationHours,
	})
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }
	return s, &at
}

func TestJWTService_RoundTrip(t *testing.T) {
	service, _ := newClockedJWTService(24)
	student := uuid.New()

	token, err := service.GenerateToken(student)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, student, claims.UserID)
	assert.Equal(t, student.String(), claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWTService_LifetimeFollowsConfig(t *testing.T) {
	service, at := newClockedJWTService(1)
	issued := *at

	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(issued.Add(time.Hour)))

	// One minute before the deadline the token still works.
	*at = issued.Add(59 * time.Minute)
	_, err = service.ValidateToken(token)
	assert.NoError(t, err)

	// One minute past it, it does not.
	*at = issued.Add(61 * time.Minute)
	claims, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	minting, at := newClockedJWTService(24)
	validating := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-signing-secret-over-32b",
		ExpirationHours: 24,
	})
	validating.now = func() time.Time { return *at }

	token, err := minting.GenerateToken(uuid.New())
	require.NoError(t, err)

	claims, err := validating.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsForeignIssuer(t *testing.T) {
	service, at := newClockedJWTService(24)

	// Same secret, different deployment name in iss.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-api",
			IssuedAt:  jwt.NewNumericDate(*at),
			ExpiresAt: jwt.NewNumericDate(at.Add(time.Hour)),
		},
	})
	token, err := foreign.SignedString([]byte(testSigningSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsUnsignedAlgorithm(t *testing.T) {
	service, at := newClockedJWTService(24)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(*at),
			ExpiresAt: jwt.NewNumericDate(at.Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsMissingExpiry(t *testing.T) {
	service, at := newClockedJWTService(24)

	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			IssuedAt: jwt.NewNumericDate(*at),
		},
	})
	token, err := eternal.SignedString([]byte(testSigningSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "a token without exp never passes")
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service, _ := newClockedJWTService(24)

	for _, token := range []string{
		"",
		"not-a-token",
		"two.parts",
		"one.too.many.parts",
		"!!!.###.$$$",
	} {
		claims, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
		assert.Nil(t, claims)
	}
}

func TestJWTService_DistinctUsersGetDistinctTokens(t *testing.T) {
	service, _ := newClockedJWTService(24)
	alice := uuid.New()
	bob := uuid.New()

	tokenA, err := service.GenerateToken(alice)
	require.NoError(t, err)
	tokenB, err := service.GenerateToken(bob)
	require.NoError(t, err)
	require.NotEqual(t, tokenA, tokenB)

	claimsA, err := service.ValidateToken(tokenA)
	require.NoError(t, err)
	claimsB, err := service.ValidateToken(tokenB)
	require.NoError(t, err)
	assert.Equal(t, alice, claimsA.UserID)
	assert.Equal(t, bob, claimsB.UserID)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service, _ := newClockedJWTService(24)
	student := uuid.New()

	token, err := service.GenerateToken(student)
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, student, getter.GetUserID())

	_, err = service.AsTokenValidator().ValidateToken("forged")
	assert.Error(t, err)
}
