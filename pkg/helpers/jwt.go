package helpers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// minSecretBytes is the HS512 block size; shorter plain secrets are accepted with a warning.
const minSecretBytes = 64

var ErrNoSigningSecret = errors.New("jwt: neither base64 secret nor secret is configured")

// SigningKey is the HMAC key material. Build it once at startup and share it read-only.
type SigningKey struct {
	key []byte
}

// NewSigningKey prefers the base64 secret and falls back to the raw bytes of the plain secret.
func NewSigningKey(secret, base64Secret string, logger *logrus.Logger) (SigningKey, error) {
	if base64Secret != "" {
		b, err := base64.StdEncoding.DecodeString(base64Secret)
		if err != nil {
			return SigningKey{}, fmt.Errorf("jwt: decode base64 secret: %w", err)
		}
		if len(b) == 0 {
			return SigningKey{}, ErrNoSigningSecret
		}
		return SigningKey{key: b}, nil
	}
	if secret == "" {
		return SigningKey{}, ErrNoSigningSecret
	}
	if len(secret) < minSecretBytes && logger != nil {
		logger.WithField("bytes", len(secret)).Warn("jwt secret is shorter than 512 bits, prefer JWT_BASE64_SECRET")
	}
	return SigningKey{key: []byte(secret)}, nil
}

// Principal is the authenticated name and its granted authorities as read from a token.
type Principal struct {
	Name        string
	Authorities []string
}

// Claims carries the comma-joined authority list next to the registered claims.
type Claims struct {
	Authorities string `json:"auth"`
	jwt.RegisteredClaims
}

// TokenService mints and validates HS512 bearer tokens.
// Tokens are self-contained: parsing never consults the store, so there is no revocation.
type TokenService struct {
	key                SigningKey
	validity           time.Duration
	rememberMeValidity time.Duration
	logger             *logrus.Logger
	now                func() time.Time
}

type TokenOption func(*TokenService)

// WithClock injects a custom clock (useful for tests).
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(key SigningKey, validity, rememberMeValidity time.Duration, logger *logrus.Logger, opts ...TokenOption) *TokenService {
	s := &TokenService{
		key:                key,
		validity:           validity,
		rememberMeValidity: rememberMeValidity,
		logger:             logger,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateToken signs a token for principal with the given authorities.
func (s *TokenService) CreateToken(principal string, authorities []string, rememberMe bool) (string, error) {
	now := s.now()
	ttl := s.validity
	if rememberMe {
		ttl = s.rememberMeValidity
	}
	claims := &Claims{
		Authorities: strings.Join(authorities, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return t.SignedString(s.key.key)
}

// ValidateToken reports whether token carries a valid signature and has not expired.
// Failures are logged, never returned.
func (s *TokenService) ValidateToken(token string) bool {
	if _, err := s.parse(token); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Debug("invalid jwt token")
		}
		return false
	}
	return true
}

// ParseAuthentication reads the principal from a token already known to be valid.
func (s *TokenService) ParseAuthentication(token string) (Principal, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Name: claims.Subject, Authorities: splitAuthorities(claims.Authorities)}, nil
}

func (s *TokenService) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func splitAuthorities(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
