package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/models/dto"
	"github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/email"
	"github.com/campusconnect/backend/internal/pkg/tracing"
)

// User-facing authentication messages
const (
	MsgEmailRegistered    = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgAccountSuspended   = "Your account has been suspended. Please contact admin."
	MsgUserNotFound       = "User not found"
)

// AuthService handles registration, login and the caller's own account
type AuthService struct {
	userRepo   repositories.IUserRepository
	groupRepo  repositories.IStudyGroupRepository
	jwtService *auth.JWTService
	mailer     email.EmailService
	logger     zerolog.Logger

	// background runs fire-and-forget work such as mail delivery
	background func(func())
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	groupRepo repositories.IStudyGroupRepository,
	jwtService *auth.JWTService,
	mailer email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
		background: func(f func()) { go f() },
	}
}

// Signup registers a student account and signs the caller in
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	ctx, span := tracing.Start(ctx, "AuthService.Signup")
	var err error
	defer func() { tracing.End(span, err) }()

	s.logger.Debug().Str("email", req.Email).Msg("Registering student")

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	year := 0
	if req.Year != nil {
		year = *req.Year
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    models.NormalizeEmail(req.Email),
		Password: hashed,
		Student:  &models.StudentProfile{Course: strings.TrimSpace(req.Course), Year: year},
	}
	if err = s.userRepo.CreateStudent(ctx, user); err != nil {
		return nil, s.registrationError(err, user.Email)
	}

	s.sendWelcome(user)
	return s.issue(user)
}

// SignupAlumni registers an alumni account and signs the caller in
func (s *AuthService) SignupAlumni(ctx context.Context, req *dto.AlumniSignupRequest) (*dto.AuthResponse, error) {
	ctx, span := tracing.Start(ctx, "AuthService.SignupAlumni")
	var err error
	defer func() { tracing.End(span, err) }()

	s.logger.Debug().Str("email", req.Email).Msg("Registering alumni")

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    models.NormalizeEmail(req.Email),
		Password: hashed,
		Alumni:   req.Profile(),
	}
	if err = s.userRepo.CreateAlumni(ctx, user); err != nil {
		return nil, s.registrationError(err, user.Email)
	}

	s.sendWelcome(user)
	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Warn().Str("email", req.Email).Msg("Login attempt for unknown email")
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to load user for login")
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
	}
	if user.IsBanned {
		s.logger.Warn().Int64("userID", user.ID).Msg("Login attempt by suspended account")
		return nil, apperrors.NewCustomError(apperrors.ErrAccountSuspended, MsgAccountSuspended)
	}

	return s.issue(user)
}

// Me returns the caller's account with the groups they joined
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userView(ctx, user)
}

// UpdateMe applies a partial update to the caller's account. Course and year only
// change for students.
func (s *AuthService) UpdateMe(ctx context.Context, userID int64, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	s.logger.Debug().Int64("userID", userID).Msg("Updating own account")

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch := req.Patch()
	if !patch.IsEmpty() {
		patch.Apply(user)
		if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update account")
			return nil, err
		}
	}
	return s.userView(ctx, user)
}

func (s *AuthService) loadUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError(MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) userView(ctx context.Context, user *models.User) (*dto.UserResponse, error) {
	resp := dto.NewUserResponse(user)
	groups, err := s.groupRepo.ListByMember(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to load joined groups")
		return nil, err
	}
	resp.GroupsJoined = dto.NewGroupSummaries(groups)
	return &resp, nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to sign token")
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) registrationError(err error, email string) error {
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		s.logger.Warn().Str("email", email).Msg("Signup with registered email")
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, MsgEmailRegistered)
	}
	s.logger.Error().Err(err).Str("email", email).Msg("Failed to register user")
	return err
}

func (s *AuthService) sendWelcome(user *models.User) {
	to, name := user.Email, user.Name
	s.background(func() {
		if err := s.mailer.SendWelcomeEmail(to, name); err != nil {
			s.logger.Error().Err(err).Str("email", to).Msg("Failed to send welcome email")
		}
	})
}
