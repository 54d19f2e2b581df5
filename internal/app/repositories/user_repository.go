package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/app/repositories/user"
	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Registration
	CreateStudent(ctx context.Context, u *models.User) error
	CreateAlumni(ctx context.Context, u *models.User) error
	CreateAdmin(ctx context.Context, u *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)

	// Lookup
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Profile
	UpdateProfile(ctx context.Context, u *models.User) error
	ListAlumni(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error)

	// Administration
	SetBanned(ctx context.Context, id int64, banned bool) error
	Delete(ctx context.Context, id int64) error
	ListWithGroupCounts(ctx context.Context) ([]*models.AdminUserView, error)
}

// UserRepository combines all user-related repositories
type UserRepository struct {
	db      *pgxpool.Pool
	common  *user.Repository
	student *user.StudentRepository
	alumni  *user.AlumniRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	common := user.NewRepository(pool)
	return &UserRepository{
		db:      pool,
		common:  common,
		student: user.NewStudentRepository(),
		alumni:  user.NewAlumniRepository(pool, common),
	}
}

// CreateStudent creates the user row and its student profile in one transaction
func (r *UserRepository) CreateStudent(ctx context.Context, u *models.User) error {
	if u.Student == nil {
		return fmt.Errorf("student profile missing: %w", apperrors.ErrValidationFailed)
	}
	u.Role = models.RoleUser
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := r.common.CreateUserTx(ctx, tx, u)
		if err != nil {
			return err
		}
		u.Student.UserID = id
		return r.student.CreateStudentTx(ctx, tx, u.Student)
	})
}

// CreateAlumni creates the user row and its alumni profile in one transaction
func (r *UserRepository) CreateAlumni(ctx context.Context, u *models.User) error {
	if u.Alumni == nil {
		return fmt.Errorf("alumni profile missing: %w", apperrors.ErrValidationFailed)
	}
	u.Role = models.RoleAlumni
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		id, err := r.common.CreateUserTx(ctx, tx, u)
		if err != nil {
			return err
		}
		u.Alumni.UserID = id
		return r.alumni.UpsertAlumniTx(ctx, tx, u.Alumni)
	})
}

// CreateAdmin creates an administrator account without a profile
func (r *UserRepository) CreateAdmin(ctx context.Context, u *models.User) error {
	u.Role = models.RoleAdmin
	_, err := r.common.CreateUserTx(ctx, r.db, u)
	return err
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// UpdateProfile writes the name and whichever profile the user carries
func (r *UserRepository) UpdateProfile(ctx context.Context, u *models.User) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.common.UpdateNameTx(ctx, tx, u.ID, u.Name); err != nil {
			return err
		}
		if u.Student != nil {
			u.Student.UserID = u.ID
			if err := r.student.UpdateStudentTx(ctx, tx, u.Student); err != nil {
				return err
			}
		}
		if u.Alumni != nil {
			u.Alumni.UserID = u.ID
			if err := r.alumni.UpsertAlumniTx(ctx, tx, u.Alumni); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListAlumni returns a page of visible alumni and the total count
func (r *UserRepository) ListAlumni(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	return r.alumni.ListAlumni(ctx, offset, limit)
}

// SetBanned toggles a user's ban flag
func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	return r.common.SetBanned(ctx, id, banned)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.common.DeleteUser(ctx, id)
}

// ListWithGroupCounts lists users for the admin dashboard
func (r *UserRepository) ListWithGroupCounts(ctx context.Context) ([]*models.AdminUserView, error) {
	return r.common.ListWithGroupCounts(ctx)
}
