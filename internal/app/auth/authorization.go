package auth

import (
	"context"
	"errors"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/logger"
)

// Common authorization messages
const (
	MsgAlumniRequired = "Alumni access required."
	MsgAdminRequired  = "Admin access required."
)

// UserLookup is the part of the user store authorization needs
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthorizationService handles ownership and role checks shared by services
type AuthorizationService struct {
	users UserLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(users UserLookup) *AuthorizationService {
	return &AuthorizationService{users: users}
}

// IsAdmin checks if the user is an administrator
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsAdmin")
		return false, err
	}
	return user.IsAdmin(), nil
}

// RequireAlumni returns a permission error unless the user signed up as alumni
func (s *AuthorizationService) RequireAlumni(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewForbiddenError(MsgAlumniRequired)
		}
		return nil, err
	}
	if !user.IsAlumni() {
		return nil, apperrors.NewForbiddenError(MsgAlumniRequired)
	}
	return user, nil
}

// RequireOwner returns a permission error carrying message unless userID owns the resource
func RequireOwner(ownerID, userID int64, message string) error {
	if ownerID != userID {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// CanViewGated reports whether userID may see an approval-gated resource. Approved
// resources are public; otherwise only the owner and administrators see them.
func (s *AuthorizationService) CanViewGated(ctx context.Context, status models.ApprovalStatus, ownerID, userID int64) (bool, error) {
	if status == models.StatusApproved || ownerID == userID {
		return true, nil
	}
	return s.IsAdmin(ctx, userID)
}
