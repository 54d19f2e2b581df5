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
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

func newProjectService() (*ProjectService, *mockProjectRepo, *mockMembers, *recordingNotifier) {
	projects, members, notifier := new(mockProjectRepo), new(mockMembers), &recordingNotifier{}
	return NewProjectService(projects, members, notifier, zerolog.Nop()), projects, members, notifier
}

func openProject() *models.Project {
	return &models.Project{ID: 1, CreatedBy: 2, MaxMembers: 2, Status: models.ProjectOpen}
}

func TestProjectService_ApplyGate(t *testing.T) {
	svc, projects, members, notifier := newProjectService()
	projects.On("GetByID", mock.Anything, int64(1)).Return(openProject(), nil)
	members.On("IsMember", mock.Anything, int64(1), int64(5)).Return(true, nil)
	members.On("IsMember", mock.Anything, int64(1), int64(6)).Return(false, nil)
	projects.On("Apply", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Apply(context.Background(), 1, 2, &dto.MessageRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Apply(context.Background(), 1, 5, &dto.MessageRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	app, err := svc.Apply(context.Background(), 1, 6, &dto.MessageRequest{Message: "pick me"})
	require.NoError(t, err)
	assert.Equal(t, "pick me", app.Message)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(2), sent[0].UserID)
	assert.Equal(t, websocket.NotifyApplicationReceived, sent[0].Kind)
}

func TestProjectService_ApplyRequiresOpenProject(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	closed := openProject()
	closed.Status = models.ProjectCompleted
	projects.On("GetByID", mock.Anything, int64(1)).Return(closed, nil)

	_, err := svc.Apply(context.Background(), 1, 6, &dto.MessageRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Equal(t, msgProjectNotOpen, apperrors.Message(err, ""))
}

func TestProjectService_ApproveOwnerOnly(t *testing.T) {
	svc, projects, _, notifier := newProjectService()
	projects.On("GetByID", mock.Anything, int64(1)).Return(openProject(), nil)

	_, err := svc.Approve(context.Background(), 1, 6, 9)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	projects.AssertNotCalled(t, "ApproveApplication", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.all())
}

func TestProjectService_ApproveFullTeamKeepsPending(t *testing.T) {
	svc, projects, _, notifier := newProjectService()
	projects.On("GetByID", mock.Anything, int64(1)).Return(openProject(), nil)
	projects.On("ApproveApplication", mock.Anything, int64(1), int64(6)).
		Return(nil, apperrors.NewCapacityExceededError(repositories.ProjectMembers.FullMsg))

	_, err := svc.Approve(context.Background(), 1, 6, 2)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Empty(t, notifier.all())
}

func TestProjectService_RejectNotifiesApplicant(t *testing.T) {
	svc, projects, _, notifier := newProjectService()
	projects.On("GetByID", mock.Anything, int64(1)).Return(openProject(), nil)
	projects.On("RejectApplication", mock.Anything, int64(1), int64(6)).
		Return(&models.ProjectApplication{ID: 3, ProjectID: 1, ApplicantID: 6, Status: models.ApplicationRejected}, nil)

	app, err := svc.Reject(context.Background(), 1, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, app.Status)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(6), sent[0].UserID)
	assert.Equal(t, websocket.NotifyApplicationRejected, sent[0].Kind)
}

func TestProjectService_Leave(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(1)).Return(openProject(), nil)
	projects.On("Leave", mock.Anything, int64(1), int64(6)).Return(nil)

	assert.ErrorIs(t, svc.Leave(context.Background(), 1, 2), apperrors.ErrPermissionDenied)
	assert.NoError(t, svc.Leave(context.Background(), 1, 6))
}
