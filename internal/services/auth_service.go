package services

import (
	"context"
	"strings"
	"time"

	"vinspect/internal/config"
	"vinspect/internal/models"
	"vinspect/internal/repositories/interfaces"
	"vinspect/internal/utils"
	"vinspect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Authentication
	RegisterInspector(ctx context.Context, request *RegisterInspectorRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Password management
	ChangePassword(ctx context.Context, inspectorID primitive.ObjectID, request *ChangePasswordRequest) error

	// Inspector administration
	GetInspector(ctx context.Context, inspectorID primitive.ObjectID) (*models.Inspector, error)
	ListInspectors(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspector, int64, error)
	SetInspectorStatus(ctx context.Context, inspectorID primitive.ObjectID, status models.InspectorStatus) (*models.Inspector, error)
	UpdateInspectorRole(ctx context.Context, inspectorID primitive.ObjectID, role models.InspectorRole) (*models.Inspector, error)
}

type authService struct {
	inspectorRepo interfaces.InspectorRepository
	cache         CacheService
	security      *config.SecurityConfig
	logger        *logger.Logger
}

func NewAuthService(
	inspectorRepo interfaces.InspectorRepository,
	cache CacheService,
	security *config.SecurityConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		inspectorRepo: inspectorRepo,
		cache:         cache,
		security:      security,
		logger:        logger,
	}
}

type RegisterInspectorRequest struct {
	Email         string               `json:"email" validate:"required,email"`
	FirstName     string               `json:"first_name" validate:"required"`
	LastName      string               `json:"last_name" validate:"required"`
	Password      string               `json:"password" validate:"required,min=8"`
	Role          models.InspectorRole `json:"role" validate:"required"`
	LicenseNumber string               `json:"license_number" validate:"required"`
	Phone         string               `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type AuthResponse struct {
	Inspector    *models.Inspector `json:"inspector"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int64             `json:"expires_in"`
}

// Authentication
func (s *authService) RegisterInspector(ctx context.Context, request *RegisterInspectorRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, utils.NewValidationError("VALIDATION_FAILED", err.Error())
	}
	if !request.Role.IsValid() {
		return nil, utils.NewValidationError("INVALID_ROLE", "unsupported inspector role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("PASSWORD_HASH_FAILED", "failed to hash password", err)
	}

	now := time.Now().UTC()
	inspector := &models.Inspector{
		Email:         strings.TrimSpace(request.Email),
		FirstName:     strings.TrimSpace(request.FirstName),
		LastName:      strings.TrimSpace(request.LastName),
		Role:          request.Role,
		LicenseNumber: strings.TrimSpace(request.LicenseNumber),
		Status:        models.InspectorStatusActive,
		Phone:         strings.TrimSpace(request.Phone),
		PasswordHash:  string(hash),
		HireDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inspector.Normalize()

	if err := s.inspectorRepo.Create(ctx, inspector); err != nil {
		return nil, utils.NewConflictError("INSPECTOR_EXISTS", err.Error())
	}

	s.logger.WithInspectorID(inspector.ID).Infof("inspector registered: %s", inspector.Email)

	return s.buildAuthResponse(inspector)
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	locked, err := s.cache.Exists(ctx, utils.CacheLockoutPrefix+email)
	if err == nil && locked {
		return nil, utils.NewUnauthorizedError("ACCOUNT_LOCKED", utils.ErrAccountLocked)
	}

	inspector, err := s.inspectorRepo.GetByEmail(ctx, email)
	if err != nil {
		s.recordFailedLogin(ctx, email)
		return nil, utils.NewUnauthorizedError("INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(inspector.PasswordHash), []byte(request.Password)); err != nil {
		s.recordFailedLogin(ctx, email)
		return nil, utils.NewUnauthorizedError("INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
	}

	if !inspector.IsActive() {
		return nil, utils.NewUnauthorizedError("INSPECTOR_INACTIVE", "inspector account is not active")
	}

	s.cache.Delete(ctx, utils.CacheLoginFailPrefix+email)

	s.logger.WithInspectorID(inspector.ID).Info("inspector logged in")

	return s.buildAuthResponse(inspector)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(token, s.security.JWTSecret)
	if err != nil {
		return utils.NewUnauthorizedError("INVALID_TOKEN", utils.ErrInvalidToken)
	}

	// Deny the token until it would have expired anyway
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		s.cache.Set(ctx, utils.CacheTokenDenyPrefix+token, true, ttl)
	}

	s.logger.WithInspectorID(claims.UserID).Info("inspector logged out")

	return nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	pair, err := utils.RefreshAccessToken(refreshToken, s.security.JWTSecret)
	if err != nil {
		return nil, utils.NewUnauthorizedError("INVALID_TOKEN", utils.ErrInvalidToken)
	}
	return pair, nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateToken(token, s.security.JWTSecret)
	if err != nil {
		return nil, utils.NewUnauthorizedError("INVALID_TOKEN", utils.ErrInvalidToken)
	}

	denied, err := s.cache.Exists(ctx, utils.CacheTokenDenyPrefix+token)
	if err == nil && denied {
		return nil, utils.NewUnauthorizedError("TOKEN_REVOKED", utils.ErrInvalidToken)
	}

	return claims, nil
}

// Password management
func (s *authService) ChangePassword(ctx context.Context, inspectorID primitive.ObjectID, request *ChangePasswordRequest) error {
	if len(request.NewPassword) < s.security.PasswordMinLength {
		return utils.NewValidationError("PASSWORD_TOO_SHORT", "new password is too short")
	}

	inspector, err := s.inspectorRepo.GetByID(ctx, inspectorID)
	if err != nil {
		return utils.NewNotFoundError("INSPECTOR_NOT_FOUND", utils.ErrInspectorNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(inspector.PasswordHash), []byte(request.CurrentPassword)); err != nil {
		return utils.NewUnauthorizedError("INVALID_CREDENTIALS", utils.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternalError("PASSWORD_HASH_FAILED", "failed to hash password", err)
	}

	if err := s.inspectorRepo.UpdatePassword(ctx, inspectorID, string(hash)); err != nil {
		return utils.NewInternalError("PASSWORD_UPDATE_FAILED", "failed to update password", err)
	}

	s.logger.WithInspectorID(inspectorID).Info("inspector changed password")

	return nil
}

// Inspector administration
func (s *authService) GetInspector(ctx context.Context, inspectorID primitive.ObjectID) (*models.Inspector, error) {
	inspector, err := s.inspectorRepo.GetByID(ctx, inspectorID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTOR_NOT_FOUND", utils.ErrInspectorNotFound)
	}
	return inspector, nil
}

func (s *authService) ListInspectors(ctx context.Context, params *utils.PaginationParams) ([]*models.Inspector, int64, error) {
	inspectors, total, err := s.inspectorRepo.List(ctx, params)
	if err != nil {
		return nil, 0, utils.NewInternalError("INSPECTOR_QUERY_FAILED", "failed to list inspectors", err)
	}
	return inspectors, total, nil
}

func (s *authService) SetInspectorStatus(ctx context.Context, inspectorID primitive.ObjectID, status models.InspectorStatus) (*models.Inspector, error) {
	inspector, err := s.inspectorRepo.GetByID(ctx, inspectorID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTOR_NOT_FOUND", utils.ErrInspectorNotFound)
	}

	switch status {
	case models.InspectorStatusActive:
		inspector.Activate()
	case models.InspectorStatusInactive:
		inspector.Deactivate()
	case models.InspectorStatusSuspended:
		inspector.Suspend()
	default:
		return nil, utils.NewValidationError("INVALID_STATUS", "unsupported inspector status")
	}

	if err := s.inspectorRepo.Update(ctx, inspector); err != nil {
		return nil, utils.NewInternalError("INSPECTOR_UPDATE_FAILED", "failed to update inspector", err)
	}

	return inspector, nil
}

func (s *authService) UpdateInspectorRole(ctx context.Context, inspectorID primitive.ObjectID, role models.InspectorRole) (*models.Inspector, error) {
	if !role.IsValid() {
		return nil, utils.NewValidationError("INVALID_ROLE", "unsupported inspector role")
	}

	inspector, err := s.inspectorRepo.GetByID(ctx, inspectorID)
	if err != nil {
		return nil, utils.NewNotFoundError("INSPECTOR_NOT_FOUND", utils.ErrInspectorNotFound)
	}

	inspector.UpdateRole(role)

	if err := s.inspectorRepo.Update(ctx, inspector); err != nil {
		return nil, utils.NewInternalError("INSPECTOR_UPDATE_FAILED", "failed to update inspector", err)
	}

	return inspector, nil
}

// Helper methods
func (s *authService) buildAuthResponse(inspector *models.Inspector) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(inspector.ID, "inspector", inspector.Email, string(inspector.Role), s.security.JWTSecret)
	if err != nil {
		return nil, utils.NewInternalError("TOKEN_GENERATION_FAILED", "failed to generate tokens", err)
	}

	return &AuthResponse{
		Inspector:    inspector,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(utils.JWTAccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) recordFailedLogin(ctx context.Context, email string) {
	failures, err := s.cache.Increment(ctx, utils.CacheLoginFailPrefix+email)
	if err != nil {
		return
	}
	if failures == 1 {
		s.cache.SetExpire(ctx, utils.CacheLoginFailPrefix+email, s.security.LoginLockoutTime)
	}
	if failures >= int64(s.security.MaxLoginAttempts) {
		s.cache.Set(ctx, utils.CacheLockoutPrefix+email, true, s.security.LoginLockoutTime)
		s.logger.WithField("email", email).Warn("account locked after repeated failed logins")
	}
}
