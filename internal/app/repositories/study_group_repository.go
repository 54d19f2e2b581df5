package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusconnect/backend/internal/app/models"
	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

// IStudyGroupRepository defines study group persistence
type IStudyGroupRepository interface {
	Create(ctx context.Context, g *models.StudyGroup) error
	GetByID(ctx context.Context, id int64) (*models.StudyGroup, error)
	ListPublic(ctx context.Context, filter models.StudyGroupFilter, offset, limit uint64) ([]*models.StudyGroup, int64, error)
	ListByMember(ctx context.Context, userID int64) ([]*models.StudyGroup, error)
	ListAll(ctx context.Context) ([]*models.StudyGroup, error)
	Update(ctx context.Context, g *models.StudyGroup) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

var studyGroupColumns = []string{
	"g.id", "g.name", "g.subject", "g.description", "g.semester", "g.tags", "g.visibility",
	"g.created_by", "g.max_members", "g.meeting_type", "g.location", "g.schedule_days",
	"g.start_time", "g.duration", "g.created_at", "g.updated_at",
	"(SELECT COUNT(*) FROM study_group_members m WHERE m.group_id = g.id)",
}

// StudyGroupRepository handles database operations for study groups
type StudyGroupRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	members *MembershipRepository
}

// NewStudyGroupRepository creates a new StudyGroupRepository
func NewStudyGroupRepository(pool *pgxpool.Pool, members *MembershipRepository) *StudyGroupRepository {
	return &StudyGroupRepository{
		db:      pool,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		members: members,
	}
}

func (r *StudyGroupRepository) selectGroups() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, studyGroupColumns...), creatorColumns...)...).
		From("study_groups g").
		Join("users cu ON cu.id = g.created_by")
}

// Create inserts the group and admits its creator as the first member
func (r *StudyGroupRepository) Create(ctx context.Context, g *models.StudyGroup) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("study_groups").
			Columns("name", "subject", "description", "semester", "tags", "visibility", "created_by",
				"max_members", "meeting_type", "location", "schedule_days", "start_time", "duration").
			Values(g.Name, g.Subject, g.Description, g.Semester, nonNil(g.Tags), g.Visibility, g.CreatedBy,
				g.MaxMembers, g.MeetingType, g.Location, nonNil(g.ScheduleDays), g.StartTime, g.Duration).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return fmt.Errorf("error creating group: %w", err)
		}
		if err := r.members.AdmitTx(ctx, tx, g.ID, g.CreatedBy, false); err != nil {
			return err
		}
		g.MemberCount = 1
		return nil
	})
}

// GetByID retrieves a group with its creator and member count
func (r *StudyGroupRepository) GetByID(ctx context.Context, id int64) (*models.StudyGroup, error) {
	sql, args, err := r.selectGroups().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	g, err := scanStudyGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(GroupMembers.NotFoundMsg)
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}
	return g, nil
}

// ListPublic returns public groups matching the filter, newest first
func (r *StudyGroupRepository) ListPublic(ctx context.Context, filter models.StudyGroupFilter, offset, limit uint64) ([]*models.StudyGroup, int64, error) {
	where := squirrel.And{squirrel.Eq{"g.visibility": models.VisibilityPublic}}
	if s := strings.TrimSpace(filter.Subject); s != "" {
		where = append(where, squirrel.Expr(`g.subject ILIKE ?`, containsPattern(s)))
	}
	if tags := models.NormalizeTags(filter.Tags); len(tags) > 0 {
		where = append(where, squirrel.Expr("g.tags && ?", tags))
	}

	total, err := countTotal(ctx, r.db, r.sb, "study_groups g", where)
	if err != nil {
		return nil, 0, err
	}

	groups, err := r.list(ctx, r.selectGroups().Where(where).OrderBy("g.created_at DESC", "g.id DESC").Offset(offset).Limit(limit))
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListByMember returns the groups userID belongs to
func (r *StudyGroupRepository) ListByMember(ctx context.Context, userID int64) ([]*models.StudyGroup, error) {
	return r.list(ctx, r.selectGroups().
		Where(squirrel.Expr("EXISTS (SELECT 1 FROM study_group_members m WHERE m.group_id = g.id AND m.user_id = ?)", userID)).
		OrderBy("g.created_at DESC", "g.id DESC"))
}

// ListAll returns every group for administrators
func (r *StudyGroupRepository) ListAll(ctx context.Context) ([]*models.StudyGroup, error) {
	return r.list(ctx, r.selectGroups().OrderBy("g.created_at DESC", "g.id DESC"))
}

func (r *StudyGroupRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.StudyGroup, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	groups := []*models.StudyGroup{}
	for rows.Next() {
		g, err := scanStudyGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Update writes every mutable column. Capacity may not drop below the member count.
func (r *StudyGroupRepository) Update(ctx context.Context, g *models.StudyGroup) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := shrinkCapacityCheck(ctx, tx, r.sb, GroupMembers, g.ID, &g.MaxMembers); err != nil {
			return err
		}

		sql, args, err := r.sb.Update("study_groups").
			SetMap(map[string]interface{}{
				"name":          g.Name,
				"subject":       g.Subject,
				"description":   g.Description,
				"semester":      g.Semester,
				"tags":          nonNil(g.Tags),
				"visibility":    g.Visibility,
				"max_members":   g.MaxMembers,
				"meeting_type":  g.MeetingType,
				"location":      g.Location,
				"schedule_days": nonNil(g.ScheduleDays),
				"start_time":    g.StartTime,
				"duration":      g.Duration,
				"updated_at":    squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": g.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&g.UpdatedAt); err != nil {
			return fmt.Errorf("error updating group: %w", err)
		}
		return nil
	})
}

// Delete removes the memberships and then the group in one transaction
func (r *StudyGroupRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.members.RemoveAllTx(ctx, tx, id); err != nil {
			return err
		}
		return deleteByID(ctx, tx, r.sb, "study_groups", id, GroupMembers.NotFoundMsg)
	})
}

// Count returns the number of groups
func (r *StudyGroupRepository) Count(ctx context.Context) (int64, error) {
	return countTotal(ctx, r.db, r.sb, "study_groups", nil)
}

func scanStudyGroup(row pgx.Row) (*models.StudyGroup, error) {
	var g models.StudyGroup
	var c models.UserSummary
	err := row.Scan(
		&g.ID, &g.Name, &g.Subject, &g.Description, &g.Semester, &g.Tags, &g.Visibility,
		&g.CreatedBy, &g.MaxMembers, &g.MeetingType, &g.Location, &g.ScheduleDays,
		&g.StartTime, &g.Duration, &g.CreatedAt, &g.UpdatedAt, &g.MemberCount,
		&c.ID, &c.Name, &c.Email, &c.Role,
	)
	if err != nil {
		return nil, err
	}
	g.Creator = &c
	return &g, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
