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

// ClubService is the club API used by ClubController and AdminController
type ClubService interface {
	List(ctx context.Context, filter models.ClubFilter, page helpers.Page) (*dto.PageResponse, error)
	Create(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*models.Club, error)
	Get(ctx context.Context, clubID, userID int64) (*dto.ClubDetailResponse, error)
	Members(ctx context.Context, clubID, userID int64) ([]models.UserSummary, error)
	Update(ctx context.Context, clubID, userID int64, req *dto.UpdateClubRequest) (*models.Club, error)
	Delete(ctx context.Context, clubID, userID int64) error
	AddMember(ctx context.Context, clubID, actorID int64, email string, asAdmin bool) (*models.UserSummary, error)
	RemoveMember(ctx context.Context, clubID, actorID, userID int64, asAdmin bool) error
	Join(ctx context.Context, clubID, userID int64) error
	Leave(ctx context.Context, clubID, userID int64) error
	Posts(ctx context.Context, clubID int64) ([]*models.ClubPost, error)
	CreatePost(ctx context.Context, clubID, userID int64, req *dto.CreatePostRequest) (*models.ClubPost, error)
	DeletePost(ctx context.Context, clubID, postID, userID int64) error
}

// ClubController handles club, club member and club post operations
type ClubController struct {
	clubService ClubService
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService ClubService, logger zerolog.Logger) *ClubController {
	return &ClubController{clubService: clubService, logger: logger}
}

// List handles listing approved clubs
// @Summary List clubs
// @Description Lists approved clubs. category=all disables the category filter.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or description substring"
// @Param category query string false "Category or all"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (max 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	filter := models.ClubFilter{Search: ctx.Query("search"), Category: ctx.Query("category")}
	resp, err := c.clubService.List(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp)
}

// Create handles creating a club
// @Summary Create a club
// @Description Creates a pending club owned by the caller, who becomes its first member.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club"
// @Success 201 {object} dto.APIResponse{data=models.Club}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or duplicate name"
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	club, err := c.clubService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, club, "Club created and awaiting approval")
}

// Get returns a club with its members
// @Summary Get a club
// @Description Approved clubs are visible to everybody; pending and denied clubs only to the owner and admins.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) Get(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	club, err := c.clubService.Get(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, club)
}

// Update patches a club
// @Summary Update a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Club}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /clubs/{id} [put]
func (c *ClubController) Update(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.UpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	club, err := c.clubService.Update(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, club)
}

// Delete removes a club with its members and posts
// @Summary Delete a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /clubs/{id} [delete]
func (c *ClubController) Delete(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.clubService.Delete(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Club deleted successfully")
}

// Members lists the members of a club
// @Summary List club members
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]models.UserSummary}
// @Router /clubs/{id}/members [get]
func (c *ClubController) Members(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	members, err := c.clubService.Members(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, members)
}

// AddMember adds a registered user to the club by email
// @Summary Add a club member
// @Description Owner only. The team size still applies.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.AddMemberRequest true "Member email"
// @Success 201 {object} dto.APIResponse{data=models.UserSummary}
// @Failure 400 {object} dto.ErrorResponse "Already a member or club is full"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /clubs/{id}/members [post]
func (c *ClubController) AddMember(ctx *gin.Context) {
	c.addMember(ctx, false)
}

// RemoveMember removes a member from the club
// @Summary Remove a club member
// @Description Owner only. The owner cannot be removed.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot remove the club owner"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /clubs/{id}/members/{userId} [delete]
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	c.removeMember(ctx, false)
}

func (c *ClubController) addMember(ctx *gin.Context, asAdmin bool) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.AddMemberRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	member, err := c.clubService.AddMember(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), req.Email, asAdmin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, member, "Member added successfully")
}

func (c *ClubController) removeMember(ctx *gin.Context, asAdmin bool) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	userID, valid := parseIDParam(ctx, "userId")
	if !valid {
		return
	}
	if err := c.clubService.RemoveMember(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), userID, asAdmin); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Member removed successfully")
}

// Join adds the caller to an approved club
// @Summary Join a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Already a member or club is full"
// @Failure 403 {object} dto.ErrorResponse "Club not approved"
// @Router /clubs/{id}/join [post]
func (c *ClubController) Join(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.clubService.Join(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Joined club successfully")
}

// Leave removes the caller from a club
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Not a member"
// @Failure 403 {object} dto.ErrorResponse "Owner cannot leave"
// @Router /clubs/{id}/leave [post]
func (c *ClubController) Leave(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.clubService.Leave(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Left club successfully")
}

// Posts lists the posts of a club
// @Summary List club posts
// @Description Returns an empty list while the club is not approved.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ClubPost}
// @Router /clubs/{id}/posts [get]
func (c *ClubController) Posts(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	posts, err := c.clubService.Posts(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, posts)
}

// CreatePost publishes a club post
// @Summary Create a club post
// @Description Owner only, and only while the club is approved. Event posts need an event date.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.APIResponse{data=models.ClubPost}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Not the owner or club not approved"
// @Router /clubs/{id}/posts [post]
func (c *ClubController) CreatePost(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	post, err := c.clubService.CreatePost(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, post, "Post created successfully")
}

// DeletePost removes a club post
// @Summary Delete a club post
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /clubs/{id}/posts/{postId} [delete]
func (c *ClubController) DeletePost(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	postID, valid := parseIDParam(ctx, "postId")
	if !valid {
		return
	}
	if err := c.clubService.DeletePost(ctx.Request.Context(), id, postID, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Post deleted successfully")
}
