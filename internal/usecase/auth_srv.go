package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-pos/internal/data/entity"
	"cinema-pos/internal/data/repository"
	"cinema-pos/internal/dto/request"
	"cinema-pos/internal/dto/response"
	"cinema-pos/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// EnsureAdmin creates the configured admin operator when it does not exist yet.
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	operator, err := s.repo.Operator.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find operator", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find operator")
	}
	if operator == nil {
		s.log.Warn("Operator not found for login", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPassword(operator.PasswordHash, req.Password) {
		s.log.Warn("Invalid password", zap.String("operator_id", operator.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !operator.IsActive {
		s.log.Warn("Inactive operator tried to login", zap.String("operator_id", operator.ID.String()))
		return nil, fmt.Errorf("account is deactivated")
	}

	token, err := s.issueToken(ctx, operator.ID, userAgent, ipAddress)
	if err != nil {
		s.log.Error("Failed to create token", zap.Error(err), zap.String("operator_id", operator.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Operator logged in",
		zap.String("operator_id", operator.ID.String()),
		zap.String("username", operator.Username))

	resp := response.AuthToResponse(operator, token)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Token.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke token", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("Operator logged out")
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	username := s.config.Auth.AdminUsername
	if username == "" || s.config.Auth.AdminPassword == "" {
		s.log.Info("No bootstrap admin configured")
		return nil
	}

	existing, err := s.repo.Operator.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin operator: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(s.config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	admin := &entity.Operator{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}

	if err := s.repo.Operator.Create(ctx, admin); err != nil {
		// another instance may have created it first
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil
		}
		return fmt.Errorf("create admin operator: %w", err)
	}

	s.log.Info("Bootstrap admin created", zap.String("username", username))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issueToken(ctx context.Context, operatorID uuid.UUID, userAgent, ipAddress string) (*entity.AuthToken, error) {
	now := time.Now()
	token := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		OperatorID: operatorID,
		Token:      utils.GenerateToken(),
		ExpiresAt:  now.Add(time.Duration(s.config.Auth.TokenExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		token.UserAgent = &userAgent
	}
	if ipAddress != "" {
		token.IPAddress = &ipAddress
	}

	if err := s.repo.Token.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}
