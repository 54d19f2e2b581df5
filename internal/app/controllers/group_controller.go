package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/middleware"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

// GroupService is the study group API used by GroupController
type GroupService interface {
	List(ctx context.Context, filter models.StudyGroupFilter, page helpers.Page) (*dto.PageResponse, error)
	MyGroups(ctx context.Context, userID int64) ([]*models.StudyGroup, error)
	Create(ctx context.Context, userID int64, req *dto.CreateGroupRequest) (*models.StudyGroup, error)
	Get(ctx context.Context, groupID, userID int64) (*dto.GroupDetailResponse, error)
	Members(ctx context.Context, groupID, userID int64) ([]models.UserSummary, error)
	Update(ctx context.Context, groupID, userID int64, req *dto.UpdateGroupRequest) (*models.StudyGroup, error)
	Delete(ctx context.Context, groupID, userID int64) error
	Join(ctx context.Context, groupID, userID int64) error
	Leave(ctx context.Context, groupID, userID int64) error
}

// GroupController handles study group operations
type GroupController struct {
	groupService GroupService
	logger       zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService GroupService, logger zerolog.Logger) *GroupController {
	return &GroupController{groupService: groupService, logger: logger}
}

// List handles listing public study groups
// @Summary List study groups
// @Description Lists public study groups. Subject matches case-insensitively; tags match any of the given values.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Subject substring"
// @Param tags query string false "Comma separated tags"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (max 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /groups [get]
func (c *GroupController) List(ctx *gin.Context) {
	filter := models.StudyGroupFilter{
		Subject: ctx.Query("subject"),
		Tags:    splitList(ctx.Query("tags")),
	}
	resp, err := c.groupService.List(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp)
}

// MyGroups lists the groups the caller belongs to
// @Summary My study groups
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudyGroup}
// @Router /groups/my-groups [get]
func (c *GroupController) MyGroups(ctx *gin.Context) {
	groups, err := c.groupService.MyGroups(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, groups)
}

// Create handles creating a study group
// @Summary Create a study group
// @Description Creates a group owned by the caller, who becomes its first member.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group"
// @Success 201 {object} dto.APIResponse{data=models.StudyGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /groups [post]
func (c *GroupController) Create(ctx *gin.Context) {
	var req dto.CreateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	group, err := c.groupService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, group, "Group created successfully")
}

// Get returns a group with its members
// @Summary Get a study group
// @Description Private groups are visible to their members only.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [get]
func (c *GroupController) Get(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	group, err := c.groupService.Get(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, group)
}

// Members lists the members of a group
// @Summary List group members
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse{data=[]models.UserSummary}
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/members [get]
func (c *GroupController) Members(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	members, err := c.groupService.Members(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, members)
}

// Update patches a group
// @Summary Update a study group
// @Description Owner only. maxMembers may not drop below the current member count.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.StudyGroup}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [put]
func (c *GroupController) Update(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.UpdateGroupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	group, err := c.groupService.Update(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, group)
}

// Delete removes a group
// @Summary Delete a study group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id} [delete]
func (c *GroupController) Delete(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.groupService.Delete(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Group deleted successfully")
}

// Join adds the caller to a group
// @Summary Join a study group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Already a member or group is full"
// @Failure 403 {object} dto.ErrorResponse "Private group"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{id}/join [post]
func (c *GroupController) Join(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.groupService.Join(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Joined group successfully")
}

// Leave removes the caller from a group
// @Summary Leave a study group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Not a member"
// @Failure 403 {object} dto.ErrorResponse "Creator cannot leave"
// @Router /groups/{id}/leave [post]
func (c *GroupController) Leave(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.groupService.Leave(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Left group successfully")
}
