package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
)

func newGroupService() (*GroupService, *mockGroupRepo, *mockMembers) {
	groups, members := new(mockGroupRepo), new(mockMembers)
	return NewGroupService(groups, members, zerolog.Nop()), groups, members
}

func TestGroupService_ListPaginates(t *testing.T) {
	svc, groups, _ := newGroupService()
	filter := models.StudyGroupFilter{Subject: "cs"}
	groups.On("ListPublic", mock.Anything, filter, uint64(10), uint64(10)).
		Return([]*models.StudyGroup{{ID: 1}}, int64(11), nil)

	resp, err := svc.List(context.Background(), filter, helpers.Page{Number: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestGroupService_CreateDefaults(t *testing.T) {
	svc, groups, _ := newGroupService()
	groups.On("Create", mock.Anything, mock.MatchedBy(func(g *models.StudyGroup) bool {
		return g.CreatedBy == 3 && g.MaxMembers == models.DefaultGroupMaxMembers && g.Visibility == models.VisibilityPublic
	})).Return(nil)

	group, err := svc.Create(context.Background(), 3, &dto.CreateGroupRequest{Name: "Algo", Subject: "CS301"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, group.Tags)
}

func TestGroupService_GetPrivateHiddenFromNonMembers(t *testing.T) {
	svc, groups, members := newGroupService()
	groups.On("GetByID", mock.Anything, int64(1)).Return(&models.StudyGroup{ID: 1, CreatedBy: 2, Visibility: models.VisibilityPrivate}, nil)
	members.On("IsMember", mock.Anything, int64(1), int64(5)).Return(false, nil)
	members.On("IsMember", mock.Anything, int64(1), int64(2)).Return(true, nil)
	members.On("ListMembers", mock.Anything, int64(1)).Return([]models.UserSummary{{ID: 2}}, nil)

	_, err := svc.Get(context.Background(), 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	detail, err := svc.Get(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 1)
}

func TestGroupService_UpdateOwnerOnly(t *testing.T) {
	svc, groups, _ := newGroupService()
	groups.On("GetByID", mock.Anything, int64(1)).Return(&models.StudyGroup{ID: 1, CreatedBy: 2, Name: "Old"}, nil)

	name := "New"
	_, err := svc.Update(context.Background(), 1, 9, &dto.UpdateGroupRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	groups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGroupService_UpdatePropagatesCapacityError(t *testing.T) {
	svc, groups, _ := newGroupService()
	groups.On("GetByID", mock.Anything, int64(1)).Return(&models.StudyGroup{ID: 1, CreatedBy: 2, MaxMembers: 10}, nil)
	groups.On("Update", mock.Anything, mock.Anything).Return(apperrors.NewBadRequestError("Max members cannot be less than current member count"))

	size := 1
	_, err := svc.Update(context.Background(), 1, 2, &dto.UpdateGroupRequest{MaxMembers: &size})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGroupService_JoinPassesStoreErrors(t *testing.T) {
	svc, _, members := newGroupService()
	full := apperrors.NewCapacityExceededError(repositories.GroupMembers.FullMsg)
	members.On("Join", mock.Anything, int64(1), int64(5)).Return(full)

	err := svc.Join(context.Background(), 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Equal(t, "Group is full", apperrors.Message(err, ""))
}

func TestGroupService_LeaveRules(t *testing.T) {
	svc, groups, members := newGroupService()
	groups.On("GetByID", mock.Anything, int64(1)).Return(&models.StudyGroup{ID: 1, CreatedBy: 2}, nil)
	members.On("Remove", mock.Anything, int64(1), int64(5)).Return(nil)

	err := svc.Leave(context.Background(), 1, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, msgGroupCreatorStay, apperrors.Message(err, ""))

	require.NoError(t, svc.Leave(context.Background(), 1, 5))
	members.AssertNumberOfCalls(t, "Remove", 1)
}

func TestGroupService_DeleteOwnerOnly(t *testing.T) {
	svc, groups, _ := newGroupService()
	groups.On("GetByID", mock.Anything, int64(1)).Return(&models.StudyGroup{ID: 1, CreatedBy: 2}, nil)
	groups.On("Delete", mock.Anything, int64(1)).Return(nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, 3), apperrors.ErrPermissionDenied)
	require.NoError(t, svc.Delete(context.Background(), 1, 2))
	groups.AssertCalled(t, "Delete", mock.Anything, int64(1))
}
