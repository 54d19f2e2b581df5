package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/logger"
)

// AlumniRepository handles alumni profile database operations
type AlumniRepository struct {
	db     *pgxpool.Pool
	sb     squirrel.StatementBuilderType
	common *Repository
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool, common *Repository) *AlumniRepository {
	return &AlumniRepository{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		common: common,
	}
}

// UpsertAlumniTx inserts or replaces the alumni profile of a user
func (r *AlumniRepository) UpsertAlumniTx(ctx context.Context, q db.DBTX, p *models.AlumniProfile) error {
	sql, args, err := r.sb.Insert("alumni_profiles").
		Columns("user_id", "passing_year", "current_status", "current_company", "job_title", "location", "linked_in", "bio").
		Values(p.UserID, p.PassingYear, p.CurrentStatus, p.CurrentCompany, p.JobTitle, p.Location, p.LinkedIn, p.Bio).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			passing_year = EXCLUDED.passing_year,
			current_status = EXCLUDED.current_status,
			current_company = EXCLUDED.current_company,
			job_title = EXCLUDED.job_title,
			location = EXCLUDED.location,
			linked_in = EXCLUDED.linked_in,
			bio = EXCLUDED.bio`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert alumni SQL")
		return fmt.Errorf("failed to build upsert alumni query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", p.UserID).Msg("Error executing upsert alumni query")
		return fmt.Errorf("error saving alumni profile: %w", err)
	}
	return nil
}

// ListAlumni returns a page of alumni that are not banned, ordered by name
func (r *AlumniRepository) ListAlumni(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	where := squirrel.And{squirrel.Eq{"u.role": models.RoleAlumni}, squirrel.Eq{"u.is_banned": false}}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("users u").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting alumni: %w", err)
	}

	sql, args, err := r.common.SelectUsers().
		Where(where).
		OrderBy("u.name", "u.id").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var alumni []*models.User
	for rows.Next() {
		u, err := ScanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		alumni = append(alumni, u)
	}
	return alumni, total, rows.Err()
}
