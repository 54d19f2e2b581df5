package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

// EventService handles events and RSVPs
type EventService struct {
	eventRepo    repositories.IEventRepository
	attendeeRepo repositories.IMembershipRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repositories.IEventRepository,
	attendeeRepo repositories.IMembershipRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		attendeeRepo: attendeeRepo,
		authz:        authz,
		logger:       logger,
	}
}

// List returns a page of approved events in date order
func (s *EventService) List(ctx context.Context, filter models.EventFilter, page helpers.Page) (*dto.PageResponse, error) {
	approved := models.StatusApproved
	filter.Status = &approved
	events, total, err := s.eventRepo.List(ctx, filter, page.Offset(), page.Limit())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list events")
		return nil, err
	}
	resp := dto.NewPageResponse(events, helpers.NewPaginationInfo(total, page))
	return &resp, nil
}

// MyEvents returns the events userID created, in any status
func (s *EventService) MyEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	return s.eventRepo.ListByCreator(ctx, userID)
}

// Create stores an event awaiting approval
func (s *EventService) Create(ctx context.Context, userID int64, req *dto.CreateEventRequest) (*models.Event, error) {
	s.logger.Debug().Int64("userID", userID).Str("title", req.Title).Msg("Creating event")

	event, err := req.ToModel(userID)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create event")
		return nil, err
	}
	return event, nil
}

// Get returns an event with its attendees, applying the approval visibility rule
func (s *EventService) Get(ctx context.Context, eventID, userID int64) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.CanViewGated(ctx, event.Status, event.CreatedBy, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(repositories.EventAttendees.NotFoundMsg)
	}

	attendees, err := s.attendeeRepo.ListMembers(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &dto.EventDetailResponse{Event: event, Attendees: attendees}, nil
}

// RSVP registers userID as attending an approved event with spare capacity
func (s *EventService) RSVP(ctx context.Context, eventID, userID int64) error {
	if err := s.attendeeRepo.Join(ctx, eventID, userID); err != nil {
		s.logger.Warn().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("RSVP rejected")
		return err
	}
	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("RSVP recorded")
	return nil
}

// CancelRSVP withdraws userID from an event
func (s *EventService) CancelRSVP(ctx context.Context, eventID, userID int64) error {
	return s.attendeeRepo.Remove(ctx, eventID, userID)
}
