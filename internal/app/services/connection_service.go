package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/email"
	"github.com/campusconnect/backend/internal/pkg/tracing"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

const (
	msgAlumniNotFound     = "Alumni not found"
	msgConnectSelf        = "Cannot send a connection request to yourself"
	msgConnectionNotYours = "Only the addressed alumni can resolve this request"
)

// ConnectionService handles student to alumni connection requests
type ConnectionService struct {
	connRepo repositories.IConnectionRepository
	userRepo repositories.IUserRepository
	mailer   email.EmailService
	notifier websocket.Notifier
	logger   zerolog.Logger

	background func(func())
}

// NewConnectionService creates a new ConnectionService
func NewConnectionService(
	connRepo repositories.IConnectionRepository,
	userRepo repositories.IUserRepository,
	mailer email.EmailService,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *ConnectionService {
	return &ConnectionService{
		connRepo:   connRepo,
		userRepo:   userRepo,
		mailer:     mailer,
		notifier:   notifier,
		logger:     logger,
		background: func(f func()) { go f() },
	}
}

// Request sends a pending connection request from studentID to alumniID
func (s *ConnectionService) Request(ctx context.Context, studentID, alumniID int64, req *dto.MessageRequest) (*models.Connection, error) {
	ctx, span := tracing.Start(ctx, "ConnectionService.Request")
	var err error
	defer func() { tracing.End(span, err) }()

	s.logger.Debug().Int64("studentID", studentID).Int64("alumniID", alumniID).Msg("Creating connection request")

	if studentID == alumniID {
		err = apperrors.NewBadRequestError(msgConnectSelf)
		return nil, err
	}
	alumni, err := s.userRepo.GetByID(ctx, alumniID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			err = apperrors.NewResourceNotFoundError(msgAlumniNotFound)
		}
		return nil, err
	}
	if !alumni.IsAlumni() {
		err = apperrors.NewResourceNotFoundError(msgAlumniNotFound)
		return nil, err
	}
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	conn := &models.Connection{StudentID: studentID, AlumniID: alumniID, Message: req.Message}
	if err = s.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}
	studentSummary, alumniSummary := student.Summary(), alumni.Summary()
	conn.Student, conn.Alumni = &studentSummary, &alumniSummary

	s.notifier.Notify(alumniID, websocket.NotifyConnectionRequested, conn)
	to, toName, fromName, message := alumni.Email, alumni.Name, student.Name, req.Message
	s.background(func() {
		if err := s.mailer.SendConnectionRequestEmail(to, toName, fromName, message); err != nil {
			s.logger.Error().Err(err).Int64("alumniID", alumniID).Msg("Failed to send connection request email")
		}
	})
	return conn, nil
}

// Incoming returns the requests addressed to alumniID
func (s *ConnectionService) Incoming(ctx context.Context, alumniID int64) ([]*models.Connection, error) {
	return s.connRepo.ListIncoming(ctx, alumniID)
}

// Sent returns the requests userID has sent
func (s *ConnectionService) Sent(ctx context.Context, userID int64) ([]*models.Connection, error) {
	return s.connRepo.ListSent(ctx, userID)
}

// Accept resolves a pending request addressed to alumniID as accepted
func (s *ConnectionService) Accept(ctx context.Context, connectionID, alumniID int64) (*models.Connection, error) {
	return s.resolve(ctx, connectionID, alumniID, models.DecisionAccept)
}

// Reject resolves a pending request addressed to alumniID as rejected
func (s *ConnectionService) Reject(ctx context.Context, connectionID, alumniID int64) (*models.Connection, error) {
	return s.resolve(ctx, connectionID, alumniID, models.DecisionReject)
}

func (s *ConnectionService) resolve(ctx context.Context, connectionID, alumniID int64, d models.Decision) (*models.Connection, error) {
	s.logger.Debug().Int64("connectionID", connectionID).Int64("alumniID", alumniID).Str("decision", string(d)).Msg("Resolving connection request")

	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.AlumniID != alumniID {
		return nil, apperrors.NewForbiddenError(msgConnectionNotYours)
	}
	next, err := conn.Status.Resolve(d)
	if err != nil {
		return nil, err
	}
	if err := s.connRepo.ResolvePending(ctx, conn, next); err != nil {
		return nil, err
	}

	kind := websocket.NotifyConnectionAccepted
	if next == models.ConnectionRejected {
		kind = websocket.NotifyConnectionRejected
	}
	s.notifier.Notify(conn.StudentID, kind, conn)
	return conn, nil
}
