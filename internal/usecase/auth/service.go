package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/cache"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
	"github.com/aftermeet-app/aftermeet/pkg/config"
	"github.com/aftermeet-app/aftermeet/pkg/jwt"
	"github.com/aftermeet-app/aftermeet/pkg/otp"
)

// Session is the authenticated identity attached to each request. It is an
// explicit value passed through handlers rather than ambient global state.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// TokenPair is the result of a successful OTP verification or refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// EmailSender delivers OTP codes to users
type EmailSender interface {
	SendOTP(ctx context.Context, email, code string) error
}

const (
	otpKeyPrefix      = "otp:code:"
	attemptsKeyPrefix = "otp:attempts:"
	refreshKeyPrefix  = "session:refresh:"
)

// Service implements the OTP email login flow
type Service struct {
	users  repositories.UserRepository
	store  cache.Store
	gen    *otp.Generator
	jwt    *jwt.Manager
	sender EmailSender
	cfg    config.OTPConfig
	logger *zap.Logger
}

// NewService creates a new auth service
func NewService(
	users repositories.UserRepository,
	store cache.Store,
	gen *otp.Generator,
	jwtManager *jwt.Manager,
	sender EmailSender,
	cfg config.OTPConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:  users,
		store:  store,
		gen:    gen,
		jwt:    jwtManager,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

// RequestCode generates an OTP for the email and delivers it. The code is
// stored with a TTL; requesting again overwrites the previous code.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	code, err := s.gen.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.store.Set(ctx, otpKeyPrefix+email, code, s.cfg.Expiry); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.sender.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("failed to send code: %w", err)
	}

	s.logger.Info("otp.requested", zap.String("email", email))
	return nil
}

// VerifyCode checks the submitted code, creates the user on first login, and
// issues a token pair. Attempts are rate-limited per email.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (*TokenPair, error) {
	attempts, err := s.store.Incr(ctx, attemptsKeyPrefix+email, s.cfg.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to track attempts: %w", err)
	}
	if s.cfg.MaxAttempts > 0 && attempts > int64(s.cfg.MaxAttempts) {
		return nil, usecaseerrors.ErrOTPExpired
	}

	stored, err := s.store.Get(ctx, otpKeyPrefix+email)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, usecaseerrors.ErrOTPExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load code: %w", err)
	}

	if !otp.Equal(stored, code) {
		return nil, usecaseerrors.ErrInvalidOTP
	}

	// Code is single-use.
	_ = s.store.Delete(ctx, otpKeyPrefix+email)
	_ = s.store.Delete(ctx, attemptsKeyPrefix+email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, usecaseerrors.ErrNotFound) {
		user = entities.NewUser(email, "")
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("failed to record login time", zap.Error(err))
	}

	s.logger.Info("otp.verified", zap.String("user_id", user.ID.String()))
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token and issues a new pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, usecaseerrors.ErrTokenInvalid
	}

	hash, err := s.jwt.HashToken(refreshToken)
	if err != nil {
		return nil, usecaseerrors.ErrTokenInvalid
	}
	if _, err := s.store.Get(ctx, refreshKeyPrefix+hash); errors.Is(err, cache.ErrCacheMiss) {
		return nil, usecaseerrors.ErrSessionNotFound
	} else if err != nil {
		return nil, err
	}

	// Rotation: the old token is revoked before the new pair is issued.
	_ = s.store.Delete(ctx, refreshKeyPrefix+hash)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash, err := s.jwt.HashToken(refreshToken)
	if err != nil {
		return usecaseerrors.ErrTokenInvalid
	}
	return s.store.Delete(ctx, refreshKeyPrefix+hash)
}

// ValidateAccess parses an access token into a Session
func (s *Service) ValidateAccess(tokenString string) (*Session, error) {
	claims, err := s.jwt.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, usecaseerrors.ErrTokenInvalid
	}
	return &Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// GetUser loads the full user record for a session
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user *entities.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash, err := s.jwt.HashToken(refresh)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, refreshKeyPrefix+hash, user.ID.String(), s.jwt.GetRefreshExpiry()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.GetAccessExpiry().Seconds()),
	}, nil
}
