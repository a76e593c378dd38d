package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// refreshTokenBytes is the amount of randomness behind a refresh token.
const refreshTokenBytes = 64

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenConfig is the immutable signing configuration of a TokenService.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AccessToken is a signed JWT and its absolute expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService mints and verifies access tokens and mints opaque refresh
// tokens. Access tokens are stateless: expiry lives in the payload only.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService from cfg.
func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// WithClock returns a copy of s that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// IssueAccessToken signs an HS256 token whose subject is the user's login.
func (s *TokenService) IssueAccessToken(login string) (AccessToken, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   login,
		ExpiresAt: exp.Unix(),
		IssuedAt:  now.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// VerifyAccessToken checks signature and expiry and returns the subject.
// It fails with ErrTokenExpired or ErrInvalidToken.
func (s *TokenService) VerifyAccessToken(tokenString string) (string, error) {
	parser := &jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	claims := &jwt.StandardClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return "", ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// IssueRefreshToken returns a URL-safe random token carrying no claims.
func (s *TokenService) IssueRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RefreshExpiry is the absolute expiry of a refresh session created now.
func (s *TokenService) RefreshExpiry() time.Time {
	return s.now().Add(s.refreshTTL)
}

// Now exposes the service clock so session expiry uses the same time source.
func (s *TokenService) Now() time.Time {
	return s.now()
}
