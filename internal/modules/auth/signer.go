package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTTL is the lifetime of a minted token.
const DefaultTTL = time.Hour

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = time.Minute

// Signer mints HS256 service tokens and caches each one until shortly before it expires.
type Signer struct {
	key     []byte
	subject string
	issuer  string
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewSigner returns a Signer for secret. It returns nil when secret is empty,
// in which case requests go out without credentials.
func NewSigner(secret, subject, issuer string, ttl time.Duration) *Signer {
	if secret == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{key: []byte(secret), subject: subject, issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *Signer) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(refreshMargin).Before(s.expires) {
		return s.token, nil
	}

	expires := now.Add(s.ttl)
	claims := &jwt.StandardClaims{
		Subject:   s.subject,
		Issuer:    s.issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: expires.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	s.token, s.expires = signed, expires
	return signed, nil
}
