package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/middleware"
)

// AdminService is the moderation API used by AdminController
type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Users(ctx context.Context) ([]dto.AdminUserResponse, error)
	Ban(ctx context.Context, adminID, userID int64) error
	Unban(ctx context.Context, adminID, userID int64) error
	DeleteUser(ctx context.Context, adminID, userID int64) error
	Groups(ctx context.Context) ([]*models.StudyGroup, error)
	DeleteGroup(ctx context.Context, groupID int64) error
	Clubs(ctx context.Context, status *models.ApprovalStatus) ([]*models.Club, error)
	SetClubStatus(ctx context.Context, clubID int64, next models.ApprovalStatus) (*models.Club, error)
	DeleteClub(ctx context.Context, clubID int64) error
	Events(ctx context.Context, status *models.ApprovalStatus) ([]*models.Event, error)
	SetEventStatus(ctx context.Context, eventID int64, next models.ApprovalStatus) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID int64) error
}

// AdminController handles administration. Every route requires the admin role.
type AdminController struct {
	adminService AdminService
	clubs        *ClubController
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController. Club member management is
// delegated to the club handlers with the owner check skipped.
func NewAdminController(adminService AdminService, clubService ClubService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		clubs:        NewClubController(clubService, logger),
		logger:       logger,
	}
}

// Stats returns platform counters
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.AdminStats}
// @Failure 403 {object} dto.ErrorResponse "Admin access required."
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, stats)
}

// Users lists every user
// @Summary List users
// @Description Every user with the number of groups joined.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminUserResponse}
// @Router /admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	users, err := c.adminService.Users(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, users)
}

// BanUser suspends an account
// @Summary Ban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot ban yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/ban [put]
func (c *AdminController) BanUser(ctx *gin.Context) {
	c.userAction(ctx, c.adminService.Ban, "User banned successfully")
}

// UnbanUser lifts a suspension
// @Summary Unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot unban yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/unban [put]
func (c *AdminController) UnbanUser(ctx *gin.Context) {
	c.userAction(ctx, c.adminService.Unban, "User unbanned successfully")
}

// DeleteUser removes an account and everything it owns
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot delete yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	c.userAction(ctx, c.adminService.DeleteUser, "User deleted successfully")
}

func (c *AdminController) userAction(ctx *gin.Context, action func(context.Context, int64, int64) error, message string) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := action(ctx.Request.Context(), middleware.CurrentUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, message)
}

// Groups lists every study group
// @Summary List all groups
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudyGroup}
// @Router /admin/groups [get]
func (c *AdminController) Groups(ctx *gin.Context) {
	groups, err := c.adminService.Groups(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, groups)
}

// DeleteGroup removes any study group
// @Summary Delete a group
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /admin/groups/{id} [delete]
func (c *AdminController) DeleteGroup(ctx *gin.Context) {
	c.deleteAction(ctx, c.adminService.DeleteGroup, "Group deleted successfully")
}

// Clubs lists clubs in any status
// @Summary List all clubs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, denied or all"
// @Success 200 {object} dto.APIResponse{data=[]models.Club}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /admin/clubs [get]
func (c *AdminController) Clubs(ctx *gin.Context) {
	status, valid := statusQuery(ctx)
	if !valid {
		return
	}
	clubs, err := c.adminService.Clubs(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, clubs)
}

// ApproveClub approves a club
// @Summary Approve a club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /admin/clubs/{id}/approve [put]
func (c *AdminController) ApproveClub(ctx *gin.Context) {
	c.setClubStatus(ctx, models.StatusApproved)
}

// DenyClub denies a club
// @Summary Deny a club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /admin/clubs/{id}/deny [put]
func (c *AdminController) DenyClub(ctx *gin.Context) {
	c.setClubStatus(ctx, models.StatusDenied)
}

func (c *AdminController) setClubStatus(ctx *gin.Context, next models.ApprovalStatus) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	club, err := c.adminService.SetClubStatus(ctx.Request.Context(), id, next)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club, "Club "+string(next)))
}

// DeleteClub removes any club
// @Summary Delete a club
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/clubs/{id} [delete]
func (c *AdminController) DeleteClub(ctx *gin.Context) {
	c.deleteAction(ctx, c.adminService.DeleteClub, "Club deleted successfully")
}

// AddClubMember adds a member to any club
// @Summary Add a club member as admin
// @Description The owner check is skipped; the team size still applies.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.AddMemberRequest true "Member email"
// @Success 201 {object} dto.APIResponse{data=models.UserSummary}
// @Failure 400 {object} dto.ErrorResponse "Already a member or club is full"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/clubs/{id}/members [post]
func (c *AdminController) AddClubMember(ctx *gin.Context) {
	c.clubs.addMember(ctx, true)
}

// RemoveClubMember removes a member from any club
// @Summary Remove a club member as admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot remove the club owner"
// @Router /admin/clubs/{id}/members/{userId} [delete]
func (c *AdminController) RemoveClubMember(ctx *gin.Context) {
	c.clubs.removeMember(ctx, true)
}

// Events lists events in any status
// @Summary List all events
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, denied or all"
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Router /admin/events [get]
func (c *AdminController) Events(ctx *gin.Context) {
	status, valid := statusQuery(ctx)
	if !valid {
		return
	}
	events, err := c.adminService.Events(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, events)
}

// ApproveEvent approves an event
// @Summary Approve an event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /admin/events/{id}/approve [put]
func (c *AdminController) ApproveEvent(ctx *gin.Context) {
	c.setEventStatus(ctx, models.StatusApproved)
}

// DenyEvent denies an event
// @Summary Deny an event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Router /admin/events/{id}/deny [put]
func (c *AdminController) DenyEvent(ctx *gin.Context) {
	c.setEventStatus(ctx, models.StatusDenied)
}

func (c *AdminController) setEventStatus(ctx *gin.Context, next models.ApprovalStatus) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	event, err := c.adminService.SetEventStatus(ctx.Request.Context(), id, next)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event "+string(next)))
}

// DeleteEvent removes any event
// @Summary Delete an event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/events/{id} [delete]
func (c *AdminController) DeleteEvent(ctx *gin.Context) {
	c.deleteAction(ctx, c.adminService.DeleteEvent, "Event deleted successfully")
}

func (c *AdminController) deleteAction(ctx *gin.Context, action func(context.Context, int64) error, message string) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := action(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, message)
}
