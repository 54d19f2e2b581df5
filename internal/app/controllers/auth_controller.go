package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/middleware"
)

// AuthService is the account API used by AuthController
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	SignupAlumni(ctx context.Context, req *dto.AlumniSignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID int64, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Signup handles student registration
// @Summary Register a student account
// @Description Creates a student account and returns a bearer token valid for 7 days. A welcome mail is sent in the background.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Student registration"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid signup request payload")
		return
	}

	resp, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Account created successfully")
}

// SignupAlumni handles alumni registration
// @Summary Register an alumni account
// @Description Creates an alumni account with its profile and returns a bearer token valid for 7 days.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AlumniSignupRequest true "Alumni registration"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup-alumni [post]
func (c *AuthController) SignupAlumni(ctx *gin.Context) {
	var req dto.AlumniSignupRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid alumni signup request payload")
		return
	}

	resp, err := c.authService.SignupAlumni(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, resp, "Account created successfully")
}

// Login handles user login
// @Summary Log in
// @Description Exchanges email and password for a bearer token. Suspended accounts are refused.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account suspended"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// Me returns the caller's account
// @Summary Current user
// @Description Returns the caller's account with its role-specific profile and joined groups.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.Me(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, user)
}

// UpdateMe patches the caller's account
// @Summary Update current user
// @Description Partially updates name, course and year. Course and year only apply to students.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateMeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [put]
func (c *AuthController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateMeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.UpdateMe(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Profile updated successfully"))
}
