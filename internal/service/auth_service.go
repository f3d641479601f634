package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"expensetracker/internal/auth"
	"expensetracker/internal/email"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/model"
	"expensetracker/internal/repository"
)

// RegisterCommand carries validated registration input.
type RegisterCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	UserID            uuid.UUID
	VerificationToken string
}

// VerifyResult describes the outcome of an email verification.
type VerifyResult struct {
	Email           string
	Verified        bool
	AlreadyVerified bool
}

// AuthService handles registration, login and email verification.
type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	VerifyEmail(ctx context.Context, token string) (*VerifyResult, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	mailer     email.Sender
	throttle   *auth.LoginThrottle
	baseURL    string
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. baseURL is the public
// address used to build verification links.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	mailer email.Sender,
	throttle *auth.LoginThrottle,
	baseURL string,
	logger *zap.Logger,
) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
		throttle:   throttle,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("auth"),
	}
}

// Register creates an unverified user and mails a verification link.
func (s *authService) Register(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Store("check user existence", err)
	}

	// The phone goes through the password hasher as well, so it cannot be read back.
	hashedPhone, err := auth.Hash(cmd.Phone, auth.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash phone: %w", err)
	}
	hashedPassword, err := auth.Hash(cmd.Password, auth.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(cmd.Name),
		Email:        cmd.Email,
		PhoneHash:    hashedPhone,
		PasswordHash: hashedPassword,
		IsVerified:   false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, apperrors.Store("create user", err)
	}

	token, err := s.jwtService.IssueVerification(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}

	link := s.baseURL + "/auth/verify?token=" + url.QueryEscape(token)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, link); err != nil {
		// The account exists already; the caller still receives the token.
		s.logger.Error("send verification email", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return &RegisterResult{UserID: user.ID, VerificationToken: token}, nil
}

// Login authenticates a verified user and returns a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if !s.throttle.Allowed(ctx, email) {
		return "", nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.throttle.Failed(ctx, email)
			s.logger.Warn("login failed: unknown email")
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Store("find user", err)
	}

	if !user.IsVerified {
		return "", nil, apperrors.ErrEmailNotVerified
	}

	if !auth.Compare(password, user.PasswordHash) {
		s.throttle.Failed(ctx, email)
		s.logger.Warn("login failed: wrong password", zap.String("user_id", user.ID.String()))
		return "", nil, apperrors.ErrInvalidCredentials
	}
	s.throttle.Reset(ctx, email)

	token, err := s.jwtService.IssueSession(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, user, nil
}

// VerifyEmail marks the token's user as verified. Repeating it is a no-op.
func (s *authService) VerifyEmail(ctx context.Context, token string) (*VerifyResult, error) {
	if token == "" {
		return nil, apperrors.ErrMissingVerificationToken
	}

	claims, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, apperrors.ErrInvalidVerificationToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Store("find user", err)
	}

	if user.IsVerified {
		return &VerifyResult{Email: user.Email, Verified: true, AlreadyVerified: true}, nil
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Store("mark user verified", err)
	}

	s.logger.Info("email verified", zap.String("user_id", user.ID.String()))
	return &VerifyResult{Email: user.Email, Verified: true}, nil
}
