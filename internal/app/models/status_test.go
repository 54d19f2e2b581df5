package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

func TestApprovalStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ApprovalStatus
		changed  bool
		wantErr  bool
	}{
		{StatusPending, StatusApproved, true, false},
		{StatusPending, StatusDenied, true, false},
		{StatusApproved, StatusDenied, true, false},
		{StatusDenied, StatusApproved, true, false},
		{StatusApproved, StatusApproved, false, false},
		{StatusApproved, StatusPending, false, true},
		{StatusDenied, StatusPending, false, true},
		{ApprovalStatus("archived"), StatusApproved, false, true},
		{StatusPending, ApprovalStatus("published"), false, true},
	}

	for _, tc := range cases {
		changed, err := tc.from.TransitionTo(tc.to)
		if tc.wantErr {
			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
			continue
		}
		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.changed, changed, "%s -> %s", tc.from, tc.to)
	}
}

func TestConnectionResolveIsTerminal(t *testing.T) {
	next, err := ConnectionPending.Resolve(DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, ConnectionAccepted, next)

	_, err = next.Resolve(DecisionReject)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	rejected, err := ConnectionPending.Resolve(DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, ConnectionRejected, rejected)

	_, err = rejected.Resolve(DecisionReject)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = ConnectionPending.Resolve(Decision("maybe"))
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestApplicationResolve(t *testing.T) {
	next, err := ApplicationPending.Resolve(DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, ApplicationApproved, next)

	next, err = ApplicationPending.Resolve(DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, ApplicationRejected, next)

	_, err = ApplicationApproved.Resolve(DecisionAccept)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestRoleTypeIsValid(t *testing.T) {
	assert.True(t, RoleAlumni.IsValid())
	assert.False(t, RoleType("instructor").IsValid())
}
