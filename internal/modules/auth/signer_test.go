package auth

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseToken(t *testing.T, secret, token string) (*jwt.StandardClaims, error) {
	t.Helper()
	claims := &jwt.StandardClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		require.IsType(t, jwt.SigningMethodHS256, tok.Method)
		return []byte(secret), nil
	})
	return claims, err
}

func TestNewSigner_EmptySecret(t *testing.T) {
	assert.Nil(t, NewSigner("", "printa-orders", "printa-orders", time.Hour))
}

func TestSigner_TokenRoundTrip(t *testing.T) {
	s := NewSigner("s3cret", "printa-orders", "web", time.Hour)
	require.NotNil(t, s)

	tok, err := s.Token()
	require.NoError(t, err)

	claims, err := parseToken(t, "s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "printa-orders", claims.Subject)
	assert.Equal(t, "web", claims.Issuer)
	assert.Equal(t, claims.IssuedAt+int64(time.Hour/time.Second), claims.ExpiresAt)
}

func TestSigner_CachesUntilNearExpiry(t *testing.T) {
	now := time.Now()
	s := NewSigner("s3cret", "sub", "iss", 10*time.Minute)
	s.now = func() time.Time { return now }

	first, err := s.Token()
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	second, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	now = now.Add(5 * time.Minute)
	third, err := s.Token()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestSigner_TokenRejectedWithOtherSecret(t *testing.T) {
	tok, err := NewSigner("one", "sub", "iss", time.Hour).Token()
	require.NoError(t, err)

	_, err = parseToken(t, "two", tok)
	var ve *jwt.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotZero(t, ve.Errors&jwt.ValidationErrorSignatureInvalid)
}

func TestSigner_DefaultTTL(t *testing.T) {
	s := NewSigner("k", "sub", "iss", 0)
	assert.Equal(t, DefaultTTL, s.ttl)
}
