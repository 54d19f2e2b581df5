package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

type adminFixture struct {
	users    *mockUserRepo
	groups   *mockGroupRepo
	clubs    *mockClubRepo
	events   *mockEventRepo
	stats    *mockStatsRepo
	notifier *recordingNotifier
	svc      *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:    new(mockUserRepo),
		groups:   new(mockGroupRepo),
		clubs:    new(mockClubRepo),
		events:   new(mockEventRepo),
		stats:    new(mockStatsRepo),
		notifier: &recordingNotifier{},
	}
	f.svc = NewAdminService(f.users, f.groups, f.clubs, f.events, f.stats, f.notifier, zerolog.Nop())
	return f
}

func TestAdminService_NoSelfActions(t *testing.T) {
	f := newAdminFixture()

	assert.ErrorIs(t, f.svc.Ban(context.Background(), 1, 1), apperrors.ErrBadRequest)
	assert.ErrorIs(t, f.svc.Unban(context.Background(), 1, 1), apperrors.ErrBadRequest)
	assert.ErrorIs(t, f.svc.DeleteUser(context.Background(), 1, 1), apperrors.ErrBadRequest)
	f.users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAdminService_BanUnknownUser(t *testing.T) {
	f := newAdminFixture()
	f.users.On("SetBanned", mock.Anything, int64(9), true).Return(apperrors.ErrUserNotFound)
	f.users.On("SetBanned", mock.Anything, int64(2), true).Return(nil)

	assert.ErrorIs(t, f.svc.Ban(context.Background(), 1, 9), apperrors.ErrResourceNotFound)
	assert.NoError(t, f.svc.Ban(context.Background(), 1, 2))
}

func TestAdminService_SetClubStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  models.ApprovalStatus
		next     models.ApprovalStatus
		wantErr  error
		wantSave bool
	}{
		{name: "approve pending", current: models.StatusPending, next: models.StatusApproved, wantSave: true},
		{name: "deny approved", current: models.StatusApproved, next: models.StatusDenied, wantSave: true},
		{name: "approve again is a no-op", current: models.StatusApproved, next: models.StatusApproved},
		{name: "back to pending", current: models.StatusDenied, next: models.StatusPending, wantErr: apperrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture()
			f.clubs.On("GetByID", mock.Anything, int64(1)).Return(&models.Club{ID: 1, Name: "Robotics", CreatedBy: 4, Status: tt.current}, nil)
			f.clubs.On("SetStatus", mock.Anything, int64(1), tt.next).Return(nil)

			club, err := f.svc.SetClubStatus(context.Background(), 1, tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, club.Status)

			if tt.wantSave {
				f.clubs.AssertCalled(t, "SetStatus", mock.Anything, int64(1), tt.next)
				sent := f.notifier.all()
				require.Len(t, sent, 1)
				assert.Equal(t, int64(4), sent[0].UserID)
				assert.Equal(t, websocket.NotifyClubStatus, sent[0].Kind)
			} else {
				f.clubs.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
				assert.Empty(t, f.notifier.all())
			}
		})
	}
}

func TestAdminService_SetEventStatusNotifiesCreator(t *testing.T) {
	f := newAdminFixture()
	f.events.On("GetByID", mock.Anything, int64(2)).Return(&models.Event{ID: 2, Title: "Fair", CreatedBy: 7, Status: models.StatusPending}, nil)
	f.events.On("SetStatus", mock.Anything, int64(2), models.StatusDenied).Return(nil)

	event, err := f.svc.SetEventStatus(context.Background(), 2, models.StatusDenied)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDenied, event.Status)

	sent := f.notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, StatusChange{ID: 2, Name: "Fair", Status: models.StatusDenied}, sent[0].Data)
}

func TestAdminService_ClubsListsEveryRow(t *testing.T) {
	f := newAdminFixture()
	pending := models.StatusPending
	f.clubs.On("List", mock.Anything, models.ClubFilter{Status: &pending}, uint64(0), uint64(0)).
		Return([]*models.Club{{ID: 1}}, int64(1), nil)

	clubs, err := f.svc.Clubs(context.Background(), &pending)
	require.NoError(t, err)
	assert.Len(t, clubs, 1)
}
