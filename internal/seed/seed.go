package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/campusconnect/backend/internal/app/models"
	appRepos "github.com/campusconnect/backend/internal/app/repositories"
	"github.com/campusconnect/backend/internal/config"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	pkgAuth "github.com/campusconnect/backend/internal/pkg/auth"
)

// AdminStore is the part of the user repository the seeder needs
type AdminStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateAdmin(ctx context.Context, u *appModels.User) error
}

// CreateDefaultData creates the configured administrator account if it doesn't exist.
// Nothing is created when no admin email or password is configured.
func CreateDefaultData(ctx context.Context, users AdminStore, cfg *config.Config, lgr zerolog.Logger) error {
	email := appModels.NormalizeEmail(cfg.Admin.Email)
	if email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("No default admin configured, skipping seed")
		return nil
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Default admin already exists")
		return nil
	}

	lgr.Info().Str("email", email).Msg("Creating default admin user...")
	hashed, err := pkgAuth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Name:     cfg.Admin.Name,
		Email:    email,
		Password: hashed,
	}
	if err := users.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("userID", admin.ID).Msg("Default admin user created")
	return nil
}

var _ AdminStore = (*appRepos.UserRepository)(nil)
