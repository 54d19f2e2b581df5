package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/auth"
	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/helpers"
	"github.com/campusconnect/backend/internal/pkg/tracing"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

const (
	msgProjectOwnerOnly  = "Only the project owner can manage this project"
	msgProjectNotOpen    = "Project is not accepting applications"
	msgProjectOwnerApply = "Project owner cannot apply to their own project"
	msgProjectOwnerStay  = "Project owner cannot leave, delete the project instead"
)

// ProjectService handles projects and their application workflow
type ProjectService struct {
	projectRepo repositories.IProjectRepository
	memberRepo  repositories.IMembershipRepository
	notifier    websocket.Notifier
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repositories.IProjectRepository,
	memberRepo repositories.IMembershipRepository,
	notifier websocket.Notifier,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// List returns a page of open projects matching the filter
func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter, page helpers.Page) (*dto.PageResponse, error) {
	projects, total, err := s.projectRepo.ListOpen(ctx, filter, page.Offset(), page.Limit())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list projects")
		return nil, err
	}
	resp := dto.NewPageResponse(projects, helpers.NewPaginationInfo(total, page))
	return &resp, nil
}

// MyProjects returns the projects userID owns or belongs to
func (s *ProjectService) MyProjects(ctx context.Context, userID int64) ([]*models.Project, error) {
	return s.projectRepo.ListForUser(ctx, userID)
}

// Create stores a project; its creator becomes the first member
func (s *ProjectService) Create(ctx context.Context, userID int64, req *dto.CreateProjectRequest) (*models.Project, error) {
	s.logger.Debug().Int64("userID", userID).Str("title", req.Title).Msg("Creating project")

	project, err := req.ToModel(userID)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create project")
		return nil, err
	}
	return project, nil
}

// Get returns a project with its members
func (s *ProjectService) Get(ctx context.Context, projectID int64) (*dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectDetailResponse{Project: project, Members: members}, nil
}

// Update applies a partial update. Only the owner may update.
func (s *ProjectService) Update(ctx context.Context, projectID, userID int64, req *dto.UpdateProjectRequest) (*models.Project, error) {
	s.logger.Debug().Int64("projectID", projectID).Int64("userID", userID).Msg("Updating project")

	project, err := s.ownedProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	patch, err := req.Patch()
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	patch.Apply(project)
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project with its members and applications. Only the owner may delete.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID int64) error {
	s.logger.Debug().Int64("projectID", projectID).Int64("userID", userID).Msg("Deleting project")

	if _, err := s.ownedProject(ctx, projectID, userID); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// Apply records a pending application from userID to an open project
func (s *ProjectService) Apply(ctx context.Context, projectID, userID int64, req *dto.MessageRequest) (*models.ProjectApplication, error) {
	s.logger.Debug().Int64("projectID", projectID).Int64("userID", userID).Msg("Applying to project")

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != models.ProjectOpen {
		return nil, apperrors.NewBadRequestError(msgProjectNotOpen)
	}
	if project.CreatedBy == userID {
		return nil, apperrors.NewBadRequestError(msgProjectOwnerApply)
	}
	member, err := s.memberRepo.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyMember, repositories.ProjectMembers.AlreadyMemberMsg)
	}

	app := &models.ProjectApplication{ProjectID: projectID, ApplicantID: userID, Message: req.Message}
	if err := s.projectRepo.Apply(ctx, app); err != nil {
		return nil, err
	}
	s.notifier.Notify(project.CreatedBy, websocket.NotifyApplicationReceived, app)
	return app, nil
}

// Leave removes userID from the team and drops their application. The owner cannot leave.
func (s *ProjectService) Leave(ctx context.Context, projectID, userID int64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatedBy == userID {
		return apperrors.NewForbiddenError(msgProjectOwnerStay)
	}
	return s.projectRepo.Leave(ctx, projectID, userID)
}

// Applications lists the applications of a project. Only the owner may see them.
func (s *ProjectService) Applications(ctx context.Context, projectID, userID int64) ([]*models.ProjectApplication, error) {
	if _, err := s.ownedProject(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListApplications(ctx, projectID)
}

// Approve accepts a pending application and admits the applicant atomically.
// A full team leaves the application pending.
func (s *ProjectService) Approve(ctx context.Context, projectID, applicantID, userID int64) (*models.ProjectApplication, error) {
	return s.resolve(ctx, projectID, applicantID, userID, models.DecisionAccept)
}

// Reject declines a pending application
func (s *ProjectService) Reject(ctx context.Context, projectID, applicantID, userID int64) (*models.ProjectApplication, error) {
	return s.resolve(ctx, projectID, applicantID, userID, models.DecisionReject)
}

func (s *ProjectService) resolve(ctx context.Context, projectID, applicantID, userID int64, d models.Decision) (*models.ProjectApplication, error) {
	ctx, span := tracing.Start(ctx, "ProjectService.ResolveApplication")
	var err error
	defer func() { tracing.End(span, err) }()

	s.logger.Debug().Int64("projectID", projectID).Int64("applicantID", applicantID).Str("decision", string(d)).Msg("Resolving application")

	if _, err = s.ownedProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	var app *models.ProjectApplication
	kind := websocket.NotifyApplicationApproved
	if d == models.DecisionAccept {
		app, err = s.projectRepo.ApproveApplication(ctx, projectID, applicantID)
	} else {
		app, err = s.projectRepo.RejectApplication(ctx, projectID, applicantID)
		kind = websocket.NotifyApplicationRejected
	}
	if err != nil {
		s.logger.Warn().Err(err).Int64("projectID", projectID).Int64("applicantID", applicantID).Msg("Application not resolved")
		return nil, err
	}

	s.notifier.Notify(applicantID, kind, app)
	return app, nil
}

func (s *ProjectService) ownedProject(ctx context.Context, projectID, userID int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(project.CreatedBy, userID, msgProjectOwnerOnly); err != nil {
		return nil, err
	}
	return project, nil
}
