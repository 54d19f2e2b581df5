package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

const (
	msgAdminSelfBan    = "You cannot ban yourself"
	msgAdminSelfUnban  = "You cannot unban yourself"
	msgAdminSelfDelete = "You cannot delete your own account"
)

// StatusChange is the payload of club and event status notifications
type StatusChange struct {
	ID     int64                 `json:"id"`
	Name   string                `json:"name"`
	Status models.ApprovalStatus `json:"status"`
}

// AdminService handles moderation and the admin dashboard
type AdminService struct {
	userRepo  repositories.IUserRepository
	groupRepo repositories.IStudyGroupRepository
	clubRepo  repositories.IClubRepository
	eventRepo repositories.IEventRepository
	statsRepo repositories.IStatsRepository
	notifier  websocket.Notifier
	logger    zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repositories.IUserRepository,
	groupRepo repositories.IStudyGroupRepository,
	clubRepo repositories.IClubRepository,
	eventRepo repositories.IEventRepository,
	statsRepo repositories.IStatsRepository,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		clubRepo:  clubRepo,
		eventRepo: eventRepo,
		statsRepo: statsRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Stats returns the dashboard counters
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.statsRepo.Stats(ctx)
}

// Users lists every account with the number of groups joined
func (s *AdminService) Users(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.userRepo.ListWithGroupCounts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		return nil, err
	}
	return dto.NewAdminUserResponses(users), nil
}

// Ban suspends an account
func (s *AdminService) Ban(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return apperrors.NewBadRequestError(msgAdminSelfBan)
	}
	return s.setBanned(ctx, adminID, userID, true)
}

// Unban lifts a suspension
func (s *AdminService) Unban(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return apperrors.NewBadRequestError(msgAdminSelfUnban)
	}
	return s.setBanned(ctx, adminID, userID, false)
}

func (s *AdminService) setBanned(ctx context.Context, adminID, userID int64, banned bool) error {
	if err := s.userRepo.SetBanned(ctx, userID, banned); err != nil {
		return notFoundUser(err)
	}
	s.logger.Info().Int64("adminID", adminID).Int64("userID", userID).Bool("banned", banned).Msg("User ban state changed")
	return nil
}

// DeleteUser removes an account with its memberships and owned records
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return apperrors.NewBadRequestError(msgAdminSelfDelete)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return notFoundUser(err)
	}
	s.logger.Info().Int64("adminID", adminID).Int64("userID", userID).Msg("User deleted")
	return nil
}

// Groups lists every study group, private ones included
func (s *AdminService) Groups(ctx context.Context) ([]*models.StudyGroup, error) {
	return s.groupRepo.ListAll(ctx)
}

// DeleteGroup removes a group regardless of ownership
func (s *AdminService) DeleteGroup(ctx context.Context, groupID int64) error {
	s.logger.Info().Int64("groupID", groupID).Msg("Admin deleting study group")
	return s.groupRepo.Delete(ctx, groupID)
}

// Clubs lists clubs in any status, optionally filtered by status
func (s *AdminService) Clubs(ctx context.Context, status *models.ApprovalStatus) ([]*models.Club, error) {
	clubs, _, err := s.clubRepo.List(ctx, models.ClubFilter{Status: status}, 0, 0)
	return clubs, err
}

// SetClubStatus moves a club to approved or denied and notifies its owner
func (s *AdminService) SetClubStatus(ctx context.Context, clubID int64, next models.ApprovalStatus) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	changed, err := club.Status.TransitionTo(next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return club, nil
	}
	if err := s.clubRepo.SetStatus(ctx, clubID, next); err != nil {
		return nil, err
	}
	club.Status = next

	s.logger.Info().Int64("clubID", clubID).Str("status", string(next)).Msg("Club status changed")
	s.notifier.Notify(club.CreatedBy, websocket.NotifyClubStatus, StatusChange{ID: club.ID, Name: club.Name, Status: next})
	return club, nil
}

// DeleteClub removes a club regardless of ownership
func (s *AdminService) DeleteClub(ctx context.Context, clubID int64) error {
	s.logger.Info().Int64("clubID", clubID).Msg("Admin deleting club")
	return s.clubRepo.Delete(ctx, clubID)
}

// Events lists events in any status, optionally filtered by status
func (s *AdminService) Events(ctx context.Context, status *models.ApprovalStatus) ([]*models.Event, error) {
	events, _, err := s.eventRepo.List(ctx, models.EventFilter{Status: status}, 0, 0)
	return events, err
}

// SetEventStatus moves an event to approved or denied and notifies its creator
func (s *AdminService) SetEventStatus(ctx context.Context, eventID int64, next models.ApprovalStatus) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	changed, err := event.Status.TransitionTo(next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return event, nil
	}
	if err := s.eventRepo.SetStatus(ctx, eventID, next); err != nil {
		return nil, err
	}
	event.Status = next

	s.logger.Info().Int64("eventID", eventID).Str("status", string(next)).Msg("Event status changed")
	s.notifier.Notify(event.CreatedBy, websocket.NotifyEventStatus, StatusChange{ID: event.ID, Name: event.Title, Status: next})
	return event, nil
}

// DeleteEvent removes an event regardless of ownership
func (s *AdminService) DeleteEvent(ctx context.Context, eventID int64) error {
	s.logger.Info().Int64("eventID", eventID).Msg("Admin deleting event")
	return s.eventRepo.Delete(ctx, eventID)
}

func notFoundUser(err error) error {
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return apperrors.NewResourceNotFoundError(MsgUserNotFound)
	}
	return err
}
