package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

const (
	msgClubOwnerOnly     = "Only the club owner can manage this club"
	msgClubOwnerRemove   = "Cannot remove the club owner"
	msgClubOwnerStay     = "Club owner cannot leave the club, delete it instead"
	msgPostAuthorOnly    = "Only the author can delete this post"
	msgPostNotFound      = "Post not found"
	msgMemberUserMissing = "User not found"
)

// ClubService handles clubs, their members and posts
type ClubService struct {
	clubRepo   repositories.IClubRepository
	postRepo   repositories.IClubPostRepository
	memberRepo repositories.IMembershipRepository
	userRepo   repositories.IUserRepository
	authz      *auth.AuthorizationService
	logger     zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubRepo repositories.IClubRepository,
	postRepo repositories.IClubPostRepository,
	memberRepo repositories.IMembershipRepository,
	userRepo repositories.IUserRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) *ClubService {
	return &ClubService{
		clubRepo:   clubRepo,
		postRepo:   postRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		authz:      authz,
		logger:     logger,
	}
}

// List returns a page of approved clubs matching the filter
func (s *ClubService) List(ctx context.Context, filter models.ClubFilter, page helpers.Page) (*dto.PageResponse, error) {
	approved := models.StatusApproved
	filter.Status = &approved
	clubs, total, err := s.clubRepo.List(ctx, filter, page.Offset(), page.Limit())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clubs")
		return nil, err
	}
	resp := dto.NewPageResponse(clubs, helpers.NewPaginationInfo(total, page))
	return &resp, nil
}

// Create stores a pending club; its creator becomes the first member
func (s *ClubService) Create(ctx context.Context, userID int64, req *dto.CreateClubRequest) (*models.Club, error) {
	s.logger.Debug().Int64("userID", userID).Str("name", req.Name).Msg("Creating club")

	club := req.ToModel(userID)
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create club")
		}
		return nil, err
	}
	return club, nil
}

// Get returns a club with its members, applying the approval visibility rule
func (s *ClubService) Get(ctx context.Context, clubID, userID int64) (*dto.ClubDetailResponse, error) {
	club, err := s.visibleClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return &dto.ClubDetailResponse{Club: club, Members: members}, nil
}

// Members lists the members of a club the caller may see
func (s *ClubService) Members(ctx context.Context, clubID, userID int64) ([]models.UserSummary, error) {
	if _, err := s.visibleClub(ctx, clubID, userID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListMembers(ctx, clubID)
}

// Update applies a partial update. Only the owner may update.
func (s *ClubService) Update(ctx context.Context, clubID, userID int64, req *dto.UpdateClubRequest) (*models.Club, error) {
	s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Msg("Updating club")

	club, err := s.ownedClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	req.Patch().Apply(club)
	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

// Delete removes a club with its members and posts. Only the owner may delete.
func (s *ClubService) Delete(ctx context.Context, clubID, userID int64) error {
	s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Msg("Deleting club")

	if _, err := s.ownedClub(ctx, clubID, userID); err != nil {
		return err
	}
	return s.clubRepo.Delete(ctx, clubID)
}

// AddMember adds the user registered under email. asAdmin skips the owner check;
// capacity still applies.
func (s *ClubService) AddMember(ctx context.Context, clubID, actorID int64, email string, asAdmin bool) (*models.UserSummary, error) {
	s.logger.Debug().Int64("clubID", clubID).Int64("actorID", actorID).Str("email", email).Msg("Adding club member")

	if err := s.checkManager(ctx, clubID, actorID, asAdmin); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgMemberUserMissing)
		}
		return nil, err
	}
	if err := s.memberRepo.Add(ctx, clubID, user.ID); err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

// RemoveMember removes userID from the club. The owner cannot be removed.
func (s *ClubService) RemoveMember(ctx context.Context, clubID, actorID, userID int64, asAdmin bool) error {
	s.logger.Debug().Int64("clubID", clubID).Int64("actorID", actorID).Int64("userID", userID).Msg("Removing club member")

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if !asAdmin {
		if err := auth.RequireOwner(club.CreatedBy, actorID, msgClubOwnerOnly); err != nil {
			return err
		}
	}
	if club.CreatedBy == userID {
		return apperrors.NewBadRequestError(msgClubOwnerRemove)
	}
	return s.memberRepo.Remove(ctx, clubID, userID)
}

// Join admits userID into an approved club with spare capacity
func (s *ClubService) Join(ctx context.Context, clubID, userID int64) error {
	if err := s.memberRepo.Join(ctx, clubID, userID); err != nil {
		s.logger.Warn().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Club join rejected")
		return err
	}
	return nil
}

// Leave removes userID from a club. The owner cannot leave.
func (s *ClubService) Leave(ctx context.Context, clubID, userID int64) error {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club.CreatedBy == userID {
		return apperrors.NewForbiddenError(msgClubOwnerStay)
	}
	return s.memberRepo.Remove(ctx, clubID, userID)
}

// Posts returns the posts of a club, or an empty list while it is not approved
func (s *ClubService) Posts(ctx context.Context, clubID int64) ([]*models.ClubPost, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.IsApproved() {
		return []*models.ClubPost{}, nil
	}
	return s.postRepo.ListByClub(ctx, clubID)
}

// CreatePost publishes a post. Only the owner posts, and only while the club is approved.
func (s *ClubService) CreatePost(ctx context.Context, clubID, userID int64, req *dto.CreatePostRequest) (*models.ClubPost, error) {
	s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Str("type", req.Type).Msg("Creating club post")

	if _, err := s.ownedClub(ctx, clubID, userID); err != nil {
		return nil, err
	}
	post, err := req.ToModel(clubID, userID)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.postRepo.CreateIfApproved(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. Only its author may delete it.
func (s *ClubService) DeletePost(ctx context.Context, clubID, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.ClubID != clubID {
		return apperrors.NewResourceNotFoundError(msgPostNotFound)
	}
	if err := auth.RequireOwner(post.CreatedBy, userID, msgPostAuthorOnly); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *ClubService) ownedClub(ctx context.Context, clubID, userID int64) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(club.CreatedBy, userID, msgClubOwnerOnly); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *ClubService) checkManager(ctx context.Context, clubID, actorID int64, asAdmin bool) error {
	if asAdmin {
		_, err := s.clubRepo.GetByID(ctx, clubID)
		return err
	}
	_, err := s.ownedClub(ctx, clubID, actorID)
	return err
}

func (s *ClubService) visibleClub(ctx context.Context, clubID, userID int64) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.CanViewGated(ctx, club.Status, club.CreatedBy, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(repositories.ClubMembers.NotFoundMsg)
	}
	return club, nil
}
