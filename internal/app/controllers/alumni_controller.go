package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/middleware"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

// AlumniService is the alumni directory API
type AlumniService interface {
	List(ctx context.Context, page helpers.Page) (*dto.PageResponse, error)
	Get(ctx context.Context, id int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateAlumniProfileRequest) (*dto.UserResponse, error)
}

// AlumniController handles the alumni directory
type AlumniController struct {
	alumniService AlumniService
	logger        zerolog.Logger
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService AlumniService, logger zerolog.Logger) *AlumniController {
	return &AlumniController{alumniService: alumniService, logger: logger}
}

// List handles listing alumni profiles
// @Summary List alumni
// @Description Lists alumni profiles. Suspended accounts are hidden.
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (max 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Router /alumni [get]
func (c *AlumniController) List(ctx *gin.Context) {
	resp, err := c.alumniService.List(ctx.Request.Context(), helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp)
}

// Get returns an alumni profile
// @Summary Get an alumni profile
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Router /alumni/{id} [get]
func (c *AlumniController) Get(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	user, err := c.alumniService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, user)
}

// UpdateProfile patches the caller's alumni profile
// @Summary Update my alumni profile
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAlumniProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Alumni access required."
// @Router /alumni/profile [put]
func (c *AlumniController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateAlumniProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	user, err := c.alumniService.UpdateProfile(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(200, dto.NewSuccessResponse(user, "Profile updated successfully"))
}
