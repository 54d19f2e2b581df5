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

// ProjectService is the project and application API used by ProjectController
type ProjectService interface {
	List(ctx context.Context, filter models.ProjectFilter, page helpers.Page) (*dto.PageResponse, error)
	MyProjects(ctx context.Context, userID int64) ([]*models.Project, error)
	Create(ctx context.Context, userID int64, req *dto.CreateProjectRequest) (*models.Project, error)
	Get(ctx context.Context, projectID int64) (*dto.ProjectDetailResponse, error)
	Update(ctx context.Context, projectID, userID int64, req *dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, projectID, userID int64) error
	Apply(ctx context.Context, projectID, userID int64, req *dto.MessageRequest) (*models.ProjectApplication, error)
	Leave(ctx context.Context, projectID, userID int64) error
	Applications(ctx context.Context, projectID, userID int64) ([]*models.ProjectApplication, error)
	Approve(ctx context.Context, projectID, applicantID, userID int64) (*models.ProjectApplication, error)
	Reject(ctx context.Context, projectID, applicantID, userID int64) (*models.ProjectApplication, error)
}

// ProjectController handles projects and their applications
type ProjectController struct {
	projectService ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService ProjectService, logger zerolog.Logger) *ProjectController {
	return &ProjectController{projectService: projectService, logger: logger}
}

// List handles listing open projects
// @Summary List projects
// @Description Lists open projects. techStack matches any of the given values; title matches a substring.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param techStack query string false "Comma separated technologies"
// @Param title query string false "Title substring"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (max 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Router /projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	filter := models.ProjectFilter{TechStack: splitList(ctx.Query("techStack")), Title: ctx.Query("title")}
	resp, err := c.projectService.List(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp)
}

// MyProjects lists projects the caller owns or belongs to
// @Summary My projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Project}
// @Router /projects/my-projects [get]
func (c *ProjectController) MyProjects(ctx *gin.Context) {
	projects, err := c.projectService.MyProjects(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, projects)
}

// Create handles creating a project
// @Summary Create a project
// @Description Creates a project owned by the caller, who becomes its first member.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.APIResponse{data=models.Project}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	project, err := c.projectService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, project, "Project created successfully")
}

// Get returns a project with its members
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	project, err := c.projectService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, project)
}

// Update patches a project
// @Summary Update a project
// @Description Owner only. maxMembers may not drop below the current member count.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Project}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /projects/{id} [put]
func (c *ProjectController) Update(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.UpdateProjectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	project, err := c.projectService.Update(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, project)
}

// Delete removes a project
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.projectService.Delete(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Project deleted successfully")
}

// Apply records an application to a project
// @Summary Apply to a project
// @Description The project must be open. Owners and members cannot apply; one application per project.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.MessageRequest false "Optional message"
// @Success 201 {object} dto.APIResponse{data=models.ProjectApplication}
// @Failure 400 {object} dto.ErrorResponse "Not open, already a member or already applied"
// @Router /projects/{id}/apply [post]
func (c *ProjectController) Apply(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	var req dto.MessageRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}
	app, err := c.projectService.Apply(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, app, "Application submitted")
}

// Leave removes the caller from a project team
// @Summary Leave a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Not a member"
// @Failure 403 {object} dto.ErrorResponse "Owner cannot leave"
// @Router /projects/{id}/leave [post]
func (c *ProjectController) Leave(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.projectService.Leave(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "Left project successfully")
}

// Applications lists applications to a project
// @Summary List project applications
// @Description Owner only.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectApplication}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /projects/{id}/applications [get]
func (c *ProjectController) Applications(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	apps, err := c.projectService.Applications(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, apps)
}

// Approve accepts an application and admits the applicant
// @Summary Approve an application
// @Description Owner only. A full team leaves the application pending.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param applicantId path int true "Applicant user ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectApplication}
// @Failure 400 {object} dto.ErrorResponse "Already resolved or team is full"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /projects/{id}/applications/{applicantId}/approve [post]
func (c *ProjectController) Approve(ctx *gin.Context) {
	c.resolve(ctx, c.projectService.Approve, "Application approved")
}

// Reject declines an application
// @Summary Reject an application
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param applicantId path int true "Applicant user ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectApplication}
// @Failure 400 {object} dto.ErrorResponse "Already resolved"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /projects/{id}/applications/{applicantId}/reject [post]
func (c *ProjectController) Reject(ctx *gin.Context) {
	c.resolve(ctx, c.projectService.Reject, "Application rejected")
}

func (c *ProjectController) resolve(
	ctx *gin.Context,
	apply func(context.Context, int64, int64, int64) (*models.ProjectApplication, error),
	message string,
) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	applicantID, valid := parseIDParam(ctx, "applicantId")
	if !valid {
		return
	}
	app, err := apply(ctx.Request.Context(), id, applicantID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(200, dto.NewSuccessResponse(app, message))
}
