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
	"github.com/campusconnect/backend/internal/pkg/dberrors"
)

// ClubNameConstraint is the unique constraint on clubs.name
const ClubNameConstraint = "clubs_name_key"

const errClubNameTaken = "A club with this name already exists"

// IClubRepository defines club persistence
type IClubRepository interface {
	Create(ctx context.Context, c *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	List(ctx context.Context, filter models.ClubFilter, offset, limit uint64) ([]*models.Club, int64, error)
	Update(ctx context.Context, c *models.Club) error
	SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error)
}

var clubColumns = []string{
	"c.id", "c.name", "c.description", "c.team_size", "c.category", "c.contact_email", "c.founded_year",
	"c.created_by", "c.status", "c.created_at", "c.updated_at",
	"(SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id)",
}

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	members *MembershipRepository
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(pool *pgxpool.Pool, members *MembershipRepository) *ClubRepository {
	return &ClubRepository{
		db:      pool,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		members: members,
	}
}

func (r *ClubRepository) selectClubs() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, clubColumns...), creatorColumns...)...).
		From("clubs c").
		Join("users cu ON cu.id = c.created_by")
}

// Create inserts a pending club and admits its creator
func (r *ClubRepository) Create(ctx context.Context, c *models.Club) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("clubs").
			Columns("name", "description", "team_size", "category", "contact_email", "founded_year", "created_by", "status").
			Values(c.Name, c.Description, c.TeamSize, c.Category, c.ContactEmail, c.FoundedYear, c.CreatedBy, c.Status).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			if dberrors.IsUniqueViolation(err, ClubNameConstraint) {
				return apperrors.NewConflictError(errClubNameTaken)
			}
			return fmt.Errorf("error creating club: %w", err)
		}
		if err := r.members.AdmitTx(ctx, tx, c.ID, c.CreatedBy, false); err != nil {
			return err
		}
		c.MemberCount = 1
		return nil
	})
}

// GetByID retrieves a club regardless of status
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	sql, args, err := r.selectClubs().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	c, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(ClubMembers.NotFoundMsg)
		}
		return nil, fmt.Errorf("error retrieving club: %w", err)
	}
	return c, nil
}

// List returns clubs matching the filter, newest first. A zero limit returns every row.
func (r *ClubRepository) List(ctx context.Context, filter models.ClubFilter, offset, limit uint64) ([]*models.Club, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"c.status": *filter.Status})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, squirrel.Expr("c.name ILIKE ?", containsPattern(s)))
	}
	if category := filter.CategoryFilter(); category != "" {
		where = append(where, squirrel.Eq{"c.category": category})
	}

	total, err := countTotal(ctx, r.db, r.sb, "clubs c", where)
	if err != nil {
		return nil, 0, err
	}

	query := r.selectClubs().Where(where).OrderBy("c.created_at DESC", "c.id DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := []*models.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, total, rows.Err()
}

// Update writes the mutable columns. Team size may not drop below the member count.
func (r *ClubRepository) Update(ctx context.Context, c *models.Club) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := shrinkCapacityCheck(ctx, tx, r.sb, ClubMembers, c.ID, &c.TeamSize); err != nil {
			return err
		}

		sql, args, err := r.sb.Update("clubs").
			SetMap(map[string]interface{}{
				"name":          c.Name,
				"description":   c.Description,
				"team_size":     c.TeamSize,
				"category":      c.Category,
				"contact_email": c.ContactEmail,
				"founded_year":  c.FoundedYear,
				"updated_at":    squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": c.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&c.UpdatedAt); err != nil {
			if dberrors.IsUniqueViolation(err, ClubNameConstraint) {
				return apperrors.NewConflictError(errClubNameTaken)
			}
			return fmt.Errorf("error updating club: %w", err)
		}
		return nil
	})
}

// SetStatus stores a new approval status
func (r *ClubRepository) SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	return setApprovalStatus(ctx, r.db, r.sb, "clubs", id, status, ClubMembers.NotFoundMsg)
}

// Delete removes members, then posts, then the club in one transaction
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.members.RemoveAllTx(ctx, tx, id); err != nil {
			return err
		}
		sql, args, err := r.sb.Delete("club_posts").Where(squirrel.Eq{"club_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting club posts: %w", err)
		}
		return deleteByID(ctx, tx, r.sb, "clubs", id, ClubMembers.NotFoundMsg)
	})
}

// CountByStatus counts clubs, optionally restricted to one status
func (r *ClubRepository) CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error) {
	var where squirrel.Sqlizer
	if status != nil {
		where = squirrel.Eq{"status": *status}
	}
	return countTotal(ctx, r.db, r.sb, "clubs", where)
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	var cu models.UserSummary
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.TeamSize, &c.Category, &c.ContactEmail, &c.FoundedYear,
		&c.CreatedBy, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.MemberCount,
		&cu.ID, &cu.Name, &cu.Email, &cu.Role,
	)
	if err != nil {
		return nil, err
	}
	c.Creator = &cu
	return &c, nil
}

// setApprovalStatus updates the status column of an approval-gated table
func setApprovalStatus(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, table string, id int64, status models.ApprovalStatus, notFoundMsg string) error {
	sql, args, err := sb.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating %s status: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(notFoundMsg)
	}
	return nil
}
