package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/logger"
)

// StudentRepository handles student profile database operations
type StudentRepository struct {
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudentTx inserts the student profile of a freshly created user
func (r *StudentRepository) CreateStudentTx(ctx context.Context, q db.DBTX, p *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "course", "year").
		Values(p.UserID, p.Course, p.Year).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// UpdateStudentTx writes course and year back
func (r *StudentRepository) UpdateStudentTx(ctx context.Context, q db.DBTX, p *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("course", p.Course).
		Set("year", p.Year).
		Where(squirrel.Eq{"user_id": p.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	return nil
}
