package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

const minPasswordLength = 8

// AuthService handles staff sign-in and account management
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff        *entity.Staff
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// SetupStatus reports whether the first owner account exists
func (s *AuthService) SetupStatus(ctx context.Context) (bool, error) {
	count, err := s.staffRepo.Count(ctx)
	if err != nil {
		return false, apperror.NewUpstreamError("Failed to check setup", err)
	}
	return count > 0, nil
}

// RegisterStaffInput represents a new staff account
type RegisterStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.StaffRole
	Mobile   *string
}

// SetupOwner creates the first owner account. It is refused once any staff
// account exists.
func (s *AuthService) SetupOwner(ctx context.Context, input *RegisterStaffInput) (*LoginOutput, error) {
	exists, err := s.SetupStatus(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewForbiddenError("Setup already completed")
	}

	input.Role = enum.StaffRoleOwner
	staff, err := s.createStaff(ctx, input)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth] owner account %s created", staff.Email)
	return s.issueTokens(staff)
}

// RegisterStaff creates a staff account on behalf of an owner
func (s *AuthService) RegisterStaff(ctx context.Context, input *RegisterStaffInput) (*entity.Staff, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid role")
	}
	return s.createStaff(ctx, input)
}

func (s *AuthService) createStaff(ctx context.Context, input *RegisterStaffInput) (*entity.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if name == "" || email == "" {
		return nil, apperror.NewBadRequestError("Name and email are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewBadRequestError("Password must be at least 8 characters")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to hash password")
	}

	staff := &entity.Staff{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     input.Role,
		Mobile:   input.Mobile,
		IsActive: true,
	}
	err = s.staffRepo.Create(ctx, staff)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewConflictError("Email already registered")
	}
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to create staff", err)
	}
	return staff, nil
}

// Login authenticates a staff member and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load staff", err)
	}
	if staff == nil || !utils.CheckPasswordHash(input.Password, staff.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, apperror.ErrAccountInactive
	}

	now := time.Now().UTC()
	staff.LastLoginAt = &now
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		log.Printf("[auth] recording login for %s failed: %v", staff.ID, err)
	}

	return s.issueTokens(staff)
}

// RefreshToken exchanges a refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load staff", err)
	}
	if staff == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !staff.IsActive {
		return nil, apperror.ErrAccountInactive
	}

	return s.issueTokens(staff)
}

func (s *AuthService) issueTokens(staff *entity.Staff) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Email, staff.Role.String())
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token")
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to issue token")
	}

	return &LoginOutput{
		Staff:        staff,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// GetCurrentStaff returns the signed-in staff member
func (s *AuthService) GetCurrentStaff(ctx context.Context, staffID uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load staff", err)
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

// ListStaff lists all staff accounts
func (s *AuthService) ListStaff(ctx context.Context) ([]entity.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list staff", err)
	}
	return staff, nil
}
