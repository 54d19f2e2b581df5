package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

type clubFixture struct {
	clubs   *mockClubRepo
	posts   *mockPostRepo
	members *mockMembers
	users   *mockUserRepo
	svc     *ClubService
}

func newClubFixture() *clubFixture {
	f := &clubFixture{
		clubs:   new(mockClubRepo),
		posts:   new(mockPostRepo),
		members: new(mockMembers),
		users:   new(mockUserRepo),
	}
	f.svc = NewClubService(f.clubs, f.posts, f.members, f.users, auth.NewAuthorizationService(f.users), zerolog.Nop())
	return f
}

func TestClubService_ListOnlyApproved(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("List", mock.Anything, mock.MatchedBy(func(filter models.ClubFilter) bool {
		return filter.Status != nil && *filter.Status == models.StatusApproved && filter.Category == "all"
	}), uint64(0), uint64(20)).Return([]*models.Club{}, int64(0), nil)

	_, err := f.svc.List(context.Background(), models.ClubFilter{Category: "all"}, helpers.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	f.clubs.AssertExpectations(t)
}

func TestClubService_GetVisibility(t *testing.T) {
	f := newClubFixture()
	pending := &models.Club{ID: 1, CreatedBy: 2, Status: models.StatusPending}
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	f.members.On("ListMembers", mock.Anything, int64(1)).Return([]models.UserSummary{{ID: 2}}, nil)
	f.users.On("GetByID", mock.Anything, int64(5)).Return(&models.User{ID: 5, Role: models.RoleUser}, nil)
	f.users.On("GetByID", mock.Anything, int64(6)).Return(&models.User{ID: 6, Role: models.RoleAdmin}, nil)

	_, err := f.svc.Get(context.Background(), 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = f.svc.Get(context.Background(), 1, 2)
	assert.NoError(t, err)

	_, err = f.svc.Get(context.Background(), 1, 6)
	assert.NoError(t, err)
}

func TestClubService_AddMember(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, CreatedBy: 2, TeamSize: 5}, nil)
	f.users.On("GetByEmail", mock.Anything, "ghost@campus.edu").Return(nil, apperrors.ErrUserNotFound)
	f.users.On("GetByEmail", mock.Anything, "bob@campus.edu").Return(&models.User{ID: 8, Name: "Bob", Email: "bob@campus.edu"}, nil)
	f.members.On("Add", mock.Anything, int64(1), int64(8)).Return(nil)

	_, err := f.svc.AddMember(context.Background(), 1, 3, "bob@campus.edu", false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.AddMember(context.Background(), 1, 2, "ghost@campus.edu", false)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	added, err := f.svc.AddMember(context.Background(), 1, 2, "bob@campus.edu", false)
	require.NoError(t, err)
	assert.Equal(t, int64(8), added.ID)

	_, err = f.svc.AddMember(context.Background(), 1, 99, "bob@campus.edu", true)
	assert.NoError(t, err)
}

func TestClubService_RemoveMemberProtectsOwner(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, CreatedBy: 2}, nil)

	err := f.svc.RemoveMember(context.Background(), 1, 2, 2, false)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	err = f.svc.RemoveMember(context.Background(), 1, 99, 2, true)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	f.members.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestClubService_PostsEmptyUntilApproved(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, Status: models.StatusDenied}, nil)

	posts, err := f.svc.Posts(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
	f.posts.AssertNotCalled(t, "ListByClub", mock.Anything, mock.Anything)
}

func TestClubService_CreatePost(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, CreatedBy: 2, Status: models.StatusPending}, nil)
	f.posts.On("CreateIfApproved", mock.Anything, mock.Anything).
		Return(apperrors.NewForbiddenError("Club must be approved before posting"))

	req := &dto.CreatePostRequest{Type: "announcement", Title: "Hi", Content: "Welcome"}

	_, err := f.svc.CreatePost(context.Background(), 1, 3, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	f.posts.AssertNotCalled(t, "CreateIfApproved", mock.Anything, mock.Anything)

	_, err = f.svc.CreatePost(context.Background(), 1, 2, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Club must be approved before posting", apperrors.Message(err, ""))
}

func TestClubService_DeletePostAuthorOnly(t *testing.T) {
	f := newClubFixture()
	f.posts.On("GetByID", mock.Anything, int64(4)).Return(&models.ClubPost{ID: 4, ClubID: 1, CreatedBy: 2}, nil)
	f.posts.On("Delete", mock.Anything, int64(4)).Return(nil)

	assert.ErrorIs(t, f.svc.DeletePost(context.Background(), 9, 4, 2), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, f.svc.DeletePost(context.Background(), 1, 4, 3), apperrors.ErrPermissionDenied)
	assert.NoError(t, f.svc.DeletePost(context.Background(), 1, 4, 2))
}

func TestClubService_OwnerCannotLeave(t *testing.T) {
	f := newClubFixture()
	f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, CreatedBy: 2}, nil)

	assert.ErrorIs(t, f.svc.Leave(context.Background(), 1, 2), apperrors.ErrPermissionDenied)
}
