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

// EventService is the event API used by EventController
type EventService interface {
	List(ctx context.Context, filter models.EventFilter, page helpers.Page) (*dto.PageResponse, error)
	MyEvents(ctx context.Context, userID int64) ([]*models.Event, error)
	Create(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*models.Event, error)
	Get(ctx context.Context, eventID, userID int64) (*dto.EventDetailResponse, error)
	RSVP(ctx context.Context, eventID, userID int64) error
	CancelRSVP(ctx context.Context, eventID, userID int64) error
}

// EventController handles event operations
type EventController struct {
	eventService EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService EventService, logger zerolog.Logger) *EventController {
	return &EventController{eventService: eventService, logger: logger}
}

// List handles listing approved events
// @Summary List events
// @Description Lists approved events ordered by date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category or all"
// @Param locationType query string false "virtual or in-person"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (max 100)" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PageResponse}
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	filter := models.EventFilter{Category: ctx.Query("category"), LocationType: ctx.Query("locationType")}
	resp, err := c.eventService.List(ctx.Request.Context(), filter, helpers.ParsePaginationParams(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, resp)
}

// MyEvents lists events created by the caller
// @Summary My events
// @Description Events created by the caller in any status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /events/my-events [get]
func (c *EventController) MyEvents(ctx *gin.Context) {
	events, err := c.eventService.MyEvents(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, events)
}

// Create handles creating an event
// @Summary Create an event
// @Description Creates an event awaiting admin approval. The date must be in the future; in-person events need a location.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	event, err := c.eventService.Create(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	created(ctx, event, "Event created and awaiting approval")
}

// Get returns an event with its attendees
// @Summary Get an event
// @Description Approved events are visible to everybody; others only to the creator and admins.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	event, err := c.eventService.Get(ctx.Request.Context(), id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ok(ctx, event)
}

// RSVP registers the caller for an event
// @Summary RSVP to an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Already attending or event is full"
// @Failure 403 {object} dto.ErrorResponse "Event not approved"
// @Router /events/{id}/rsvp [post]
func (c *EventController) RSVP(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.eventService.RSVP(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "RSVP confirmed")
}

// CancelRSVP withdraws the caller from an event
// @Summary Cancel an RSVP
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Not attending"
// @Router /events/{id}/rsvp [delete]
func (c *EventController) CancelRSVP(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}
	if err := c.eventService.CancelRSVP(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	done(ctx, "RSVP cancelled")
}
