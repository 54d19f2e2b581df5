package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
)

// IStatsRepository reads dashboard counters
type IStatsRepository interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// StatsRepository computes the admin dashboard counters in one round trip
type StatsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Stats returns the current counters
func (r *StatsRepository) Stats(ctx context.Context) (*models.AdminStats, error) {
	sql, args, err := r.sb.Select(
		"(SELECT COUNT(*) FROM users)",
		"(SELECT COUNT(*) FROM users WHERE is_banned)",
		"(SELECT COUNT(*) FROM study_groups)",
		"(SELECT COUNT(*) FROM clubs)",
		"(SELECT COUNT(*) FROM clubs WHERE status = 'pending')",
		"(SELECT COUNT(*) FROM events)",
		"(SELECT COUNT(*) FROM events WHERE status = 'pending')",
		"(SELECT COUNT(*) FROM projects)",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.AdminStats
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&s.TotalUsers, &s.BannedUsers, &s.TotalGroups, &s.TotalClubs,
		&s.PendingClubs, &s.TotalEvents, &s.PendingEvents, &s.TotalProjects,
	); err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &s, nil
}
