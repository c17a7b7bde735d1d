package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/middleware"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
)

// AuthHandler handles authentication and staff account requests
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the token
// cookie Secure and should be set outside development.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// SetupStatus reports whether the first owner has been created
// @Summary Setup status
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/setup [get]
func (h *AuthHandler) SetupStatus(c *gin.Context) {
	exists, err := h.authService.SetupStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Setup status retrieved successfully", gin.H{"admin_exists": exists})
}

// Setup creates the first owner account
// @Summary Create first owner
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.SetupRequest true "Owner account"
// @Success 201 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /auth/setup [post]
func (h *AuthHandler) Setup(c *gin.Context) {
	var req request.SetupRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.SetupOwner(c.Request.Context(), &service.RegisterStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, output)
	response.Created(c, "Owner account created successfully", tokenPayload(output))
}

// Login handles staff login
// @Summary Login
// @Description Authenticate staff and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, output)
	response.OK(c, "Login successful", tokenPayload(output))
}

// RefreshToken handles token refresh
// @Summary Refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setTokenCookie(c, output)
	response.OK(c, "Token refreshed successfully", tokenPayload(output))
}

// Logout clears the token cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.OK(c, "Logged out successfully", nil)
}

// Me returns the signed-in staff member
func (h *AuthHandler) Me(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	staff, err := h.authService.GetCurrentStaff(c.Request.Context(), *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}

// RegisterStaff lets an owner add a staff account
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req request.RegisterStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := enum.ParseStaffRole(req.Role)
	if err != nil {
		response.BadRequest(c, "Invalid role")
		return
	}

	staff, err := h.authService.RegisterStaff(c.Request.Context(), &service.RegisterStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Mobile:   req.Mobile,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Staff registered successfully", staff)
}

// ListStaff lists staff accounts
func (h *AuthHandler) ListStaff(c *gin.Context) {
	staff, err := h.authService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Staff retrieved successfully", staff)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, output *service.LoginOutput) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, output.AccessToken, int(output.ExpiresIn), "/", "", h.secureCookie, true)
}

func tokenPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"user":          output.Staff,
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    output.ExpiresIn,
	}
}
