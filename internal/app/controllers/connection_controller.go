package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/middleware"
)

// ConnectionService is the student to alumni connection API
type ConnectionService interface {
	Request(ctx context.Context, studentID, alumniID int64, req *dto.MessageRequest) (*models.Connection, error)
	Incoming(ctx context.Context, alumniID int64) ([]*models.Connection, error)
	Sent(ctx context.Context, userID int64) ([]*models.Connection, error)
	Accept(ctx context.Context, connectionID, alumniID int64) (*models.Connection, error)
	Reject(ctx context.Context, connectionID, alumniID int64) (*models.Connection, error)
}

// ConnectionController handles connection requests between students and alumni
type ConnectionController struct {
	connectionService ConnectionService
	logger            zerolog.Logger
}

// NewConnectionController creates a new ConnectionController
func NewConnectionController(connectionService ConnectionService, logger zerolog.Logger) *ConnectionController {
	return &ConnectionController{connectionService: connectionService, logger: logger}
}

// Request sends a connection request to an alumni
// @Summary Request a connection
// @Description Sends a pending connection request. The alumni receives a mail and a live notification.
// @Tags connections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param alumniId path int true "Alumni user ID"
// @Param request body dto.MessageRequest false "Optional message"
// @Success 201 {object} dto.APIResponse{data=models.Connection}
// @Failure 400 {object} dto.ErrorResponse "Self request or request already exists"
// @Failure 404 {object} dto.ErrorResponse "Alumni not found"
// @Router /connections/{alumniId} [post]
func (c *ConnectionController) Request(ctx *gin.Context) {
	alumniID, valid := parseIDParam(ctx, "alumniId")
	if !valid {
		return
	}
	var req dto.MessageRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}
	conn, err := c.connectionService.Request(ctx.Request.Context(), middleware.CurrentUserID(ctx), alumniID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, conn, "Connection request sent")
}

// Incoming lists requests addressed to the calling alumni
// @Summary Incoming connection requests
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Connection}
// @Failure 403 {object} dto.ErrorResponse "Alumni access required."
// @Router /connections/incoming [get]
func (c *ConnectionController) Incoming(ctx *gin.Context) {
	conns, err := c.connectionService.Incoming(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, conns)
}

// Sent lists requests the caller has sent
// @Summary Sent connection requests
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Connection}
// @Router /connections/sent [get]
func (c *ConnectionController) Sent(ctx *gin.Context) {
	conns, err := c.connectionService.Sent(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, conns)
}

// Accept accepts a pending request
// @Summary Accept a connection request
// @Description Only the addressed alumni may resolve a request, and only once.
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Success 200 {object} dto.APIResponse{data=models.Connection}
// @Failure 400 {object} dto.ErrorResponse "Already resolved"
// @Failure 403 {object} dto.ErrorResponse "Not the addressed alumni"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Router /connections/{id}/accept [put]
func (c *ConnectionController) Accept(ctx *gin.Context) {
	c.resolve(ctx, c.connectionService.Accept, "Connection accepted")
}

// Reject rejects a pending request
// @Summary Reject a connection request
// @Tags connections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Connection ID"
// @Success 200 {object} dto.APIResponse{data=models.Connection}
// @Failure 400 {object} dto.ErrorResponse "Already resolved"
// @Failure 403 {object} dto.ErrorResponse "Not the addressed alumni"
// @Failure 404 {object} dto.ErrorResponse "Connection not found"
// @Router /connections/{id}/reject [put]
func (c *ConnectionController) Reject(ctx *gin.Context) {
	c.resolve(ctx, c.connectionService.Reject, "Connection rejected")
}

func (c *ConnectionController) resolve(
	ctx *gin.Context,
	apply func(context.Context, int64, int64) (*models.Connection, error),
	message string,
) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	conn, err := apply(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(200, dto.NewSuccessResponse(conn, message))
}
