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
	"github.com/campusconnect/backend/internal/pkg/tracing"
)

const (
	msgGroupOwnerOnly   = "Only the group creator can modify this group"
	msgGroupCreatorStay = "Creator cannot leave group, delete it instead"
)

// GroupService handles study groups and their memberships
type GroupService struct {
	groupRepo  repositories.IStudyGroupRepository
	memberRepo repositories.IMembershipRepository
	logger     zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(
	groupRepo repositories.IStudyGroupRepository,
	memberRepo repositories.IMembershipRepository,
	logger zerolog.Logger,
) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// List returns a page of public groups matching the filter
func (s *GroupService) List(ctx context.Context, filter models.StudyGroupFilter, page helpers.Page) (*dto.PageResponse, error) {
	groups, total, err := s.groupRepo.ListPublic(ctx, filter, page.Offset(), page.Limit())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list study groups")
		return nil, err
	}
	resp := dto.NewPageResponse(groups, helpers.NewPaginationInfo(total, page))
	return &resp, nil
}

// MyGroups returns the groups userID is a member of
func (s *GroupService) MyGroups(ctx context.Context, userID int64) ([]*models.StudyGroup, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

// Create stores a group; its creator becomes the first member
func (s *GroupService) Create(ctx context.Context, userID int64, req *dto.CreateGroupRequest) (*models.StudyGroup, error) {
	s.logger.Debug().Int64("userID", userID).Str("name", req.Name).Msg("Creating study group")

	group := req.ToModel(userID)
	if err := s.groupRepo.Create(ctx, group); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create study group")
		return nil, err
	}
	return group, nil
}

// Get returns a group with its members. Private groups are hidden from non-members.
func (s *GroupService) Get(ctx context.Context, groupID, userID int64) (*dto.GroupDetailResponse, error) {
	group, err := s.visibleGroup(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &dto.GroupDetailResponse{StudyGroup: group, Members: members}, nil
}

// Members lists the members of a group the caller may see
func (s *GroupService) Members(ctx context.Context, groupID, userID int64) ([]models.UserSummary, error) {
	if _, err := s.visibleGroup(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListMembers(ctx, groupID)
}

// Update applies a partial update. Only the creator may update.
func (s *GroupService) Update(ctx context.Context, groupID, userID int64, req *dto.UpdateGroupRequest) (*models.StudyGroup, error) {
	s.logger.Debug().Int64("groupID", groupID).Int64("userID", userID).Msg("Updating study group")

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(group.CreatedBy, userID, msgGroupOwnerOnly); err != nil {
		return nil, err
	}

	req.Patch().Apply(group)
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes a group and its memberships. Only the creator may delete.
func (s *GroupService) Delete(ctx context.Context, groupID, userID int64) error {
	s.logger.Debug().Int64("groupID", groupID).Int64("userID", userID).Msg("Deleting study group")

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if err := auth.RequireOwner(group.CreatedBy, userID, msgGroupOwnerOnly); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, groupID)
}

// Join admits userID into a public group with spare capacity
func (s *GroupService) Join(ctx context.Context, groupID, userID int64) error {
	ctx, span := tracing.Start(ctx, "GroupService.Join")
	err := s.memberRepo.Join(ctx, groupID, userID)
	tracing.End(span, err)
	if err != nil {
		s.logger.Warn().Err(err).Int64("groupID", groupID).Int64("userID", userID).Msg("Join rejected")
		return err
	}
	s.logger.Info().Int64("groupID", groupID).Int64("userID", userID).Msg("User joined study group")
	return nil
}

// Leave removes userID from a group. The creator cannot leave.
func (s *GroupService) Leave(ctx context.Context, groupID, userID int64) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatedBy == userID {
		return apperrors.NewForbiddenError(msgGroupCreatorStay)
	}
	return s.memberRepo.Remove(ctx, groupID, userID)
}

func (s *GroupService) visibleGroup(ctx context.Context, groupID, userID int64) (*models.StudyGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.Visibility == models.VisibilityPrivate {
		member, err := s.memberRepo.IsMember(ctx, groupID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, apperrors.NewResourceNotFoundError(repositories.GroupMembers.NotFoundMsg)
		}
	}
	return group, nil
}
