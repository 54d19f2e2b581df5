package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

// AlumniService serves the alumni directory
type AlumniService struct {
	userRepo repositories.IUserRepository
	authz    *auth.AuthorizationService
	logger   zerolog.Logger
}

// NewAlumniService creates a new AlumniService
func NewAlumniService(userRepo repositories.IUserRepository, authz *auth.AuthorizationService, logger zerolog.Logger) *AlumniService {
	return &AlumniService{userRepo: userRepo, authz: authz, logger: logger}
}

// List returns a page of alumni profiles; banned accounts are hidden
func (s *AlumniService) List(ctx context.Context, page helpers.Page) (*dto.PageResponse, error) {
	users, total, err := s.userRepo.ListAlumni(ctx, page.Offset(), page.Limit())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list alumni")
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	resp := dto.NewPageResponse(items, helpers.NewPaginationInfo(total, page))
	return &resp, nil
}

// Get returns one alumni profile
func (s *AlumniService) Get(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(msgAlumniNotFound)
		}
		return nil, err
	}
	if !user.IsAlumni() {
		return nil, apperrors.NewResourceNotFoundError(msgAlumniNotFound)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update to the caller's alumni profile
func (s *AlumniService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateAlumniProfileRequest) (*dto.UserResponse, error) {
	s.logger.Debug().Int64("userID", userID).Msg("Updating alumni profile")

	user, err := s.authz.RequireAlumni(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Patch().Apply(user)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update alumni profile")
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
