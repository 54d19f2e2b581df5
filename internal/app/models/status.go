package models

import (
	"fmt"

	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// ApprovalStatus is the admin-controlled visibility of clubs and events
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusDenied   ApprovalStatus = "denied"
)

// IsValid reports whether s is a known approval status
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// TransitionTo validates an administrator moving s to next. Pending is only an
// initial state; approved and denied may be swapped at any time. changed is false
// when next equals s.
func (s ApprovalStatus) TransitionTo(next ApprovalStatus) (changed bool, err error) {
	if next != StatusApproved && next != StatusDenied {
		return false, apperrors.NewInvalidTransitionError(fmt.Sprintf("Cannot move status to %q", next))
	}
	if !s.IsValid() {
		return false, apperrors.NewInvalidTransitionError(fmt.Sprintf("Unknown current status %q", s))
	}
	return s != next, nil
}

// Decision is the outcome chosen by whoever resolves a gate record
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ConnectionStatus is the state of a student to alumni connection request
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// Resolve returns the status reached by applying d. Only pending requests can be
// resolved; a second resolution is a conflict.
func (s ConnectionStatus) Resolve(d Decision) (ConnectionStatus, error) {
	if s != ConnectionPending {
		return s, apperrors.NewConflictError(fmt.Sprintf("Connection request has already been %s", s))
	}
	switch d {
	case DecisionAccept:
		return ConnectionAccepted, nil
	case DecisionReject:
		return ConnectionRejected, nil
	}
	return s, apperrors.NewBadRequestError(fmt.Sprintf("Unknown decision %q", d))
}

// ApplicationStatus is the state of a project application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Resolve returns the status reached by applying d to a pending application
func (s ApplicationStatus) Resolve(d Decision) (ApplicationStatus, error) {
	if s != ApplicationPending {
		return s, apperrors.NewConflictError(fmt.Sprintf("Application has already been %s", s))
	}
	switch d {
	case DecisionAccept:
		return ApplicationApproved, nil
	case DecisionReject:
		return ApplicationRejected, nil
	}
	return s, apperrors.NewBadRequestError(fmt.Sprintf("Unknown decision %q", d))
}
