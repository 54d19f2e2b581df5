package services

import (
	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/repositories"
	pkgAuth "github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/email"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

// Services groups the business services handed to controllers
type Services struct {
	Authz      *auth.AuthorizationService
	Auth       *AuthService
	Group      *GroupService
	Club       *ClubService
	Event      *EventService
	Connection *ConnectionService
	Alumni     *AlumniService
	Project    *ProjectService
	Admin      *AdminService
}

// NewServices wires every service onto the repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *pkgAuth.JWTService,
	mailer email.EmailService,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *Services {
	authz := auth.NewAuthorizationService(repos.UserRepository)
	return &Services{
		Authz: authz,
		Auth: NewAuthService(repos.UserRepository, repos.StudyGroupRepository, jwtService, mailer,
			logger.With().Str("service", "auth").Logger()),
		Group: NewGroupService(repos.StudyGroupRepository, repos.GroupMembers,
			logger.With().Str("service", "group").Logger()),
		Club: NewClubService(repos.ClubRepository, repos.ClubPostRepository, repos.ClubMembers, repos.UserRepository, authz,
			logger.With().Str("service", "club").Logger()),
		Event: NewEventService(repos.EventRepository, repos.EventAttendees, authz,
			logger.With().Str("service", "event").Logger()),
		Connection: NewConnectionService(repos.ConnectionRepository, repos.UserRepository, mailer, notifier,
			logger.With().Str("service", "connection").Logger()),
		Alumni: NewAlumniService(repos.UserRepository, authz,
			logger.With().Str("service", "alumni").Logger()),
		Project: NewProjectService(repos.ProjectRepository, repos.ProjectMembers, notifier,
			logger.With().Str("service", "project").Logger()),
		Admin: NewAdminService(repos.UserRepository, repos.StudyGroupRepository, repos.ClubRepository, repos.EventRepository,
			repos.StatsRepository, notifier, logger.With().Str("service", "admin").Logger()),
	}
}
