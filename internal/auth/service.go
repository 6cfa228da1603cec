package auth

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rootslab/opsfinance/internal"
)

// UserRepository defines the account lookups auth needs.
type UserRepository interface {
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
}

// SessionGuard is the slice of the idle-session watchdog auth drives:
// sessions start at login, get touched on refresh, and end at logout.
type SessionGuard interface {
	Start(sessionID string)
	Touch(sessionID string)
	SignOut(sessionID string)
	IsExpired(sessionID string) bool
}

type Service struct {
	userRepo   UserRepository
	tokens     TokenGenerator
	guard      SessionGuard
	bcryptCost int
	logger     *slog.Logger
}

func NewService(userRepo UserRepository, tokens TokenGenerator, guard SessionGuard, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		guard:      guard,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate verifies credentials, opens a watched session, and issues
// a token pair carrying the session id.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}
	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, sessionID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue access token", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, sessionID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue refresh token", err)
	}

	if s.guard != nil {
		s.guard.Start(sessionID)
	}

	s.logger.Info("user authenticated", "user_id", user.ID, "session_id", sessionID)

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens exchanges a refresh token for a new pair. The session id
// is carried over, so refreshing counts as activity rather than opening a
// second session.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	if s.guard != nil && s.guard.IsExpired(claims.SessionID) {
		return AuthTokens{}, internal.ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, claims.SessionID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue access token", err)
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, claims.SessionID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to issue refresh token", err)
	}

	if s.guard != nil {
		s.guard.Touch(claims.SessionID)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken checks the token signature and the idle session it
// belongs to.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	if s.guard != nil && s.guard.IsExpired(claims.SessionID) {
		return nil, internal.ErrSessionExpired
	}

	return claims, nil
}

// TouchSession records request activity so the idle timer restarts.
func (s *Service) TouchSession(sessionID string) {
	if s.guard != nil {
		s.guard.Touch(sessionID)
	}
}

// Logout closes the session without firing the idle-expiry callback.
func (s *Service) Logout(tokenString string) error {
	claims, err := s.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return err
	}

	if s.guard != nil {
		s.guard.SignOut(claims.SessionID)
	}

	s.logger.Info("user logged out", "user_id", claims.UserID, "session_id", claims.SessionID)
	return nil
}

// HashPassword creates a bcrypt hash, used by the seeder.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
