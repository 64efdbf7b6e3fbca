package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/benchtrack/internal/app/models"
	"github.com/yigit/benchtrack/internal/app/models/dto"
	"github.com/yigit/benchtrack/internal/app/repositories"
	"github.com/yigit/benchtrack/internal/pkg/apperrors"
	"github.com/yigit/benchtrack/internal/pkg/auth"
	"github.com/yigit/benchtrack/internal/pkg/email"
	"github.com/yigit/benchtrack/internal/pkg/helpers"
)

// TokenIssuer mints token pairs
type TokenIssuer interface {
	GenerateTokenPair(user *models.User, consultantID *int64) (*auth.TokenPair, error)
}

// AuthService handles registration, login and token rotation
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo       repositories.IUserRepository
	tokenRepo      repositories.ITokenRepository
	consultantRepo repositories.IConsultantRepository
	tokens         TokenIssuer
	mailer         email.EmailService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	consultantRepo repositories.IConsultantRepository,
	tokens TokenIssuer,
	mailer email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		consultantRepo: consultantRepo,
		tokens:         tokens,
		mailer:         mailer,
		logger:         logger,
	}
}

// Register creates the account. Consultants get a bench profile created in
// the same transaction.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidPassword, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleConsultant
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      emailAddr,
		Password:   hashed,
		Role:       role,
		Department: helpers.NilIfEmpty(req.Department),
	}

	var consultantID *int64
	if role == models.RoleConsultant {
		consultant := NewBenchConsultant(user.Name, user.Email)
		consultant.Department = user.Department
		if err := s.consultantRepo.CreateWithUser(ctx, user, consultant); err != nil {
			return nil, fmt.Errorf("user creation error: %w", err)
		}
		consultantID = &consultant.ID
	} else if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered")

	go func(to, name string) {
		if err := s.mailer.SendWelcomeEmail(to, name); err != nil {
			s.logger.Warn().Err(err).Str("email", to).Msg("Failed to send welcome email")
		}
	}(user.Email, user.Name)

	token, err := s.issueTokens(ctx, user, consultantID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: *token, User: dto.NewUserResponse(user, consultantID)}, nil
}

// Login authenticates a user by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last login time")
	}

	consultantID, err := s.consultantIDFor(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueTokens(ctx, user, consultantID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: *token, User: dto.NewUserResponse(user, consultantID)}, nil
}

// RefreshToken rotates a refresh token. The old token is revoked so it
// cannot be replayed.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	consultantID, err := s.consultantIDFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, consultantID)
}

// Logout revokes the given refresh token, or every token of the user when
// none is given
func (s *authServiceImpl) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if strings.TrimSpace(refreshToken) != "" {
		err := s.tokenRepo.RevokeToken(ctx, refreshToken)
		if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
			return err
		}
		return nil
	}
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// GetProfile returns the caller's account
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	consultantID, err := s.consultantIDFor(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user, consultantID)
	return &resp, nil
}

func (s *authServiceImpl) consultantIDFor(ctx context.Context, user *models.User) (*int64, error) {
	if user.Role != models.RoleConsultant {
		return nil, nil
	}
	c, err := s.consultantRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConsultantNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load consultant profile: %w", err)
	}
	return &c.ID, nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User, consultantID *int64) (*dto.TokenResponse, error) {
	pair, err := s.tokens.GenerateTokenPair(user, consultantID)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(pair.ExpiresIn),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(pair.RefreshExpiresIn),
	}, nil
}
