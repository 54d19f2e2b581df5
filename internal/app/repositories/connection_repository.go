package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
	"github.com/campusconnect/backend/internal/pkg/dberrors"
)

// ConnectionPairConstraint is the unique constraint on (student_id, alumni_id)
const ConnectionPairConstraint = "connections_student_id_alumni_id_key"

// IConnectionRepository defines connection persistence
type IConnectionRepository interface {
	Create(ctx context.Context, c *models.Connection) error
	GetByID(ctx context.Context, id int64) (*models.Connection, error)
	ListIncoming(ctx context.Context, alumniID int64) ([]*models.Connection, error)
	ListSent(ctx context.Context, studentID int64) ([]*models.Connection, error)
	ResolvePending(ctx context.Context, c *models.Connection, next models.ConnectionStatus) error
}

// ConnectionRepository handles database operations for connection requests
type ConnectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ConnectionRepository) selectConnections() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.student_id", "c.alumni_id", "c.status", "c.message", "c.created_at", "c.updated_at",
		"s.id", "s.name", "s.email", "s.role",
		"a.id", "a.name", "a.email", "a.role",
	).
		From("connections c").
		Join("users s ON s.id = c.student_id").
		Join("users a ON a.id = c.alumni_id")
}

// Create stores a pending request. A second request for the same pair is a conflict.
func (r *ConnectionRepository) Create(ctx context.Context, c *models.Connection) error {
	c.Status = models.ConnectionPending
	sql, args, err := r.sb.Insert("connections").
		Columns("student_id", "alumni_id", "status", "message").
		Values(c.StudentID, c.AlumniID, c.Status, c.Message).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err, ConnectionPairConstraint):
			return apperrors.NewConflictError("Connection request already exists")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("Alumni not found")
		}
		return fmt.Errorf("error creating connection: %w", err)
	}
	return nil
}

// GetByID retrieves a connection with both parties
func (r *ConnectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	sql, args, err := r.selectConnections().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	c, err := scanConnection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Connection request not found")
		}
		return nil, fmt.Errorf("error retrieving connection: %w", err)
	}
	return c, nil
}

// ListIncoming returns the requests addressed to an alumni, newest first
func (r *ConnectionRepository) ListIncoming(ctx context.Context, alumniID int64) ([]*models.Connection, error) {
	return r.list(ctx, squirrel.Eq{"c.alumni_id": alumniID})
}

// ListSent returns the requests a user has sent, newest first
func (r *ConnectionRepository) ListSent(ctx context.Context, studentID int64) ([]*models.Connection, error) {
	return r.list(ctx, squirrel.Eq{"c.student_id": studentID})
}

func (r *ConnectionRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Connection, error) {
	sql, args, err := r.selectConnections().Where(where).OrderBy("c.created_at DESC", "c.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	conns := []*models.Connection{}
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// ResolvePending moves a pending connection to next. The update only matches a row
// that is still pending, so two concurrent resolutions cannot both succeed.
func (r *ConnectionRepository) ResolvePending(ctx context.Context, c *models.Connection, next models.ConnectionStatus) error {
	sql, args, err := r.sb.Update("connections").
		Set("status", next).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID, "status": models.ConnectionPending}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflictError("Connection request has already been resolved")
		}
		return fmt.Errorf("error updating connection: %w", err)
	}
	c.Status = next
	return nil
}

func scanConnection(row pgx.Row) (*models.Connection, error) {
	var c models.Connection
	var s, a models.UserSummary
	err := row.Scan(
		&c.ID, &c.StudentID, &c.AlumniID, &c.Status, &c.Message, &c.CreatedAt, &c.UpdatedAt,
		&s.ID, &s.Name, &s.Email, &s.Role,
		&a.ID, &a.Name, &a.Email, &a.Role,
	)
	if err != nil {
		return nil, err
	}
	c.Student = &s
	c.Alumni = &a
	return &c, nil
}
