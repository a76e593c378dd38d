package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Login    string
	Username string
	Email    string
	Password string
}

// Session is the credential pair handed out at login.
type Session struct {
	Access           AccessToken
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService handles registration, login, the refresh protocol and
// resolution of access tokens to users.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	tokens      *TokenService
	bcryptCost  int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
	}
}

// RegisterUser creates the account and returns an access token for it.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, AccessToken, error) {
	if _, err := s.userRepo.GetByLogin(ctx, in.Login); err == nil {
		return nil, AccessToken{}, ErrLoginTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, AccessToken{}, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, AccessToken{}, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, AccessToken{}, err
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, AccessToken{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Login:        in.Login,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// lost a race with a concurrent registration
			if _, lookupErr := s.userRepo.GetByLogin(ctx, in.Login); lookupErr == nil {
				return nil, AccessToken{}, ErrLoginTaken
			}
			return nil, AccessToken{}, ErrEmailTaken
		}
		return nil, AccessToken{}, fmt.Errorf("failed to register user: %w", err)
	}

	access, err := s.tokens.IssueAccessToken(user.Login)
	if err != nil {
		return nil, AccessToken{}, err
	}
	return user, access, nil
}

// LoginUser verifies the credentials and opens a refresh session.
// There is no lockout after repeated failures.
func (s *AuthService) LoginUser(ctx context.Context, login, password string) (*Session, error) {
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Login lookup for %s failed: %v", login, err)
		}
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user.Login)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken()
	if err != nil {
		return nil, err
	}
	expiresAt := s.tokens.RefreshExpiry()
	if _, err := s.sessionRepo.Create(ctx, user.ID, refresh, expiresAt); err != nil {
		return nil, err
	}

	return &Session{Access: access, RefreshToken: refresh, RefreshExpiresAt: expiresAt}, nil
}

// RefreshAccessToken exchanges a live refresh token for a new access token.
// The refresh token is not rotated, and an expired session is rejected but
// left in place.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (AccessToken, error) {
	if refreshToken == "" {
		return AccessToken{}, ErrUnauthenticated
	}
	session, err := s.sessionRepo.Find(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Refresh session lookup failed: %v", err)
		}
		return AccessToken{}, ErrUnauthenticated
	}
	if session.IsExpired(s.tokens.Now()) {
		return AccessToken{}, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		log.Printf("Refresh session %s points at unusable user: %v", session.ID, err)
		return AccessToken{}, ErrUnauthenticated
	}
	return s.tokens.IssueAccessToken(user.Login)
}

// Logout revokes the refresh session, if there is one. It never fails on
// an unknown token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, refreshToken)
}

// LogoutEverywhere revokes every refresh session of the user.
func (s *AuthService) LogoutEverywhere(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteAllForUser(ctx, userID)
}

// Authenticate resolves a raw access token to its user. Every failure is
// reported as ErrUnauthenticated; the cause is only logged.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	token := strings.TrimSpace(rawToken)
	for strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	login, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		log.Printf("JWT validation failed: %v", err)
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		log.Printf("Token subject %s could not be resolved: %v", login, err)
		return nil, ErrUnauthenticated
	}
	return user, nil
}
