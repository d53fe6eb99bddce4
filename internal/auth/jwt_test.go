package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthri/basket-api/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifier_RoundTrip(t *testing.T) {
	v := auth.NewVerifier(testSecret, "basket-api")
	userID := uuid.New()

	token, err := v.Sign(userID, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifier_EmptyToken(t *testing.T) {
	v := auth.NewVerifier(testSecret, "")

	_, err := v.Verify("")

	assert.Error(t, err)
}

func TestVerifier_WrongSecret(t *testing.T) {
	signer := auth.NewVerifier("another-secret-another-secret-00", "")
	token, err := signer.Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	v := auth.NewVerifier(testSecret, "")
	_, err = v.Verify(token)

	assert.Error(t, err)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	v := auth.NewVerifier(testSecret, "")
	token, err := v.Sign(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)

	assert.Error(t, err)
}

func TestVerifier_MissingExpiry(t *testing.T) {
	// Tokens without an exp claim are rejected outright.
	claims := jwt.RegisteredClaims{Subject: uuid.New().String()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.Error(t, err)
}

func TestVerifier_WrongIssuer(t *testing.T) {
	signer := auth.NewVerifier(testSecret, "someone-else")
	token, err := signer.Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	v := auth.NewVerifier(testSecret, "basket-api")
	_, err = v.Verify(token)

	assert.Error(t, err)
}

func TestVerifier_IssuerNotEnforcedWhenUnset(t *testing.T) {
	signer := auth.NewVerifier(testSecret, "someone-else")
	token, err := signer.Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	v := auth.NewVerifier(testSecret, "")
	_, err = v.Verify(token)

	assert.NoError(t, err)
}

func TestVerifier_SubjectNotAUUID(t *testing.T) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.Error(t, err)
}

func TestVerifier_RejectsNonHMAC(t *testing.T) {
	// alg=none style downgrades must fail the signing-method check.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.Error(t, err)
}
