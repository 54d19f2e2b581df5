package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/dberrors"
	"github.com/campusconnect/backend/internal/pkg/logger"
)

// EmailConstraint is the unique constraint on users.email
const EmailConstraint = "users_email_key"

// userColumns selects a user together with both optional profiles
var userColumns = []string{
	"u.id", "u.name", "u.email", "u.password", "u.role", "u.is_banned", "u.created_at", "u.updated_at",
	"sp.course", "sp.year",
	"ap.passing_year", "ap.current_status", "ap.current_company", "ap.job_title", "ap.location", "ap.linked_in", "ap.bio",
}

// Repository handles common user database operations
type Repository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SelectUsers returns the base query joining users with their profiles
func (r *Repository) SelectUsers(extra ...string) squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, userColumns...), extra...)...).
		From("users u").
		LeftJoin("student_profiles sp ON sp.user_id = u.id").
		LeftJoin("alumni_profiles ap ON ap.user_id = u.id")
}

// CreateUserTx inserts the users row and returns its id
func (r *Repository) CreateUserTx(ctx context.Context, q db.DBTX, u *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role").
		Values(u.Name, models.NormalizeEmail(u.Email), u.Password, u.Role).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if dberrors.IsUniqueViolation(err, EmailConstraint) {
			logger.Warn().Str("email", u.Email).Msg("Attempted to register an existing email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return u.ID, nil
}

// GetUserByID retrieves a user with its profile by ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// GetUserByEmail retrieves a user with its profile by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.email": models.NormalizeEmail(email)})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.SelectUsers().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	u, err := ScanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// EmailExists checks if an email already exists
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": models.NormalizeEmail(email)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// UpdateNameTx updates the display name
func (r *Repository) UpdateNameTx(ctx context.Context, q db.DBTX, userID int64, name string) error {
	sql, args, err := r.sb.Update("users").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetBanned toggles the ban flag
func (r *Repository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_banned", banned).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating ban flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser deletes a user. Profiles, memberships, requests and owned records
// are removed by ON DELETE CASCADE.
func (r *Repository) DeleteUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListWithGroupCounts returns every user with the number of groups joined, newest first
func (r *Repository) ListWithGroupCounts(ctx context.Context) ([]*models.AdminUserView, error) {
	sql, args, err := r.SelectUsers("(SELECT COUNT(*) FROM study_group_members m WHERE m.user_id = u.id)").
		OrderBy("u.created_at DESC", "u.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.AdminUserView
	for rows.Next() {
		var count int
		u, err := ScanUser(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, &models.AdminUserView{User: *u, GroupsJoinedCount: count})
	}
	return users, rows.Err()
}

// ScanUser scans a row produced by SelectUsers, followed by any extra destinations
func ScanUser(row pgx.Row, extra ...any) (*models.User, error) {
	var (
		u             models.User
		course        *string
		year          *int
		passingYear   *int
		currentStatus *string
		company       *string
		jobTitle      *string
		location      *string
		linkedIn      *string
		bio           *string
	)

	dest := []any{
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsBanned, &u.CreatedAt, &u.UpdatedAt,
		&course, &year,
		&passingYear, &currentStatus, &company, &jobTitle, &location, &linkedIn, &bio,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if course != nil && year != nil {
		u.Student = &models.StudentProfile{UserID: u.ID, Course: *course, Year: *year}
	}
	if passingYear != nil {
		u.Alumni = &models.AlumniProfile{
			UserID:         u.ID,
			PassingYear:    *passingYear,
			CurrentStatus:  models.AlumniStatus(deref(currentStatus)),
			CurrentCompany: deref(company),
			JobTitle:       deref(jobTitle),
			Location:       deref(location),
			LinkedIn:       deref(linkedIn),
			Bio:            deref(bio),
		}
	}
	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
