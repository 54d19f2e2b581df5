package repositories

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
)

// IClubPostRepository defines club post persistence
type IClubPostRepository interface {
	CreateIfApproved(ctx context.Context, p *models.ClubPost) error
	GetByID(ctx context.Context, id int64) (*models.ClubPost, error)
	ListByClub(ctx context.Context, clubID int64) ([]*models.ClubPost, error)
	Delete(ctx context.Context, id int64) error
}

// ClubPostRepository handles database operations for club posts
type ClubPostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClubPostRepository creates a new ClubPostRepository
func NewClubPostRepository(pool *pgxpool.Pool) *ClubPostRepository {
	return &ClubPostRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ClubPostRepository) selectPosts() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.club_id", "p.created_by", "p.type", "p.title", "p.content",
		"p.event_date", "p.event_time", "p.event_location", "p.created_at",
		"cu.id", "cu.name", "cu.email", "cu.role",
	).
		From("club_posts p").
		Join("users cu ON cu.id = p.created_by")
}

// CreateIfApproved inserts the post while holding a share lock on the club, so the
// approval status is checked live and cannot change until the post is written
func (r *ClubPostRepository) CreateIfApproved(ctx context.Context, p *models.ClubPost) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("status").
			From("clubs").
			Where(squirrel.Eq{"id": p.ClubID}).
			Suffix("FOR SHARE").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		var status models.ApprovalStatus
		if err := tx.QueryRow(ctx, sql, args...).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(ClubMembers.NotFoundMsg)
			}
			return fmt.Errorf("error reading club status: %w", err)
		}
		if status != models.StatusApproved {
			return apperrors.NewForbiddenError("Club must be approved before posting")
		}

		sql, args, err = r.sb.Insert("club_posts").
			Columns("club_id", "created_by", "type", "title", "content", "event_date", "event_time", "event_location").
			Values(p.ClubID, p.CreatedBy, p.Type, p.Title, p.Content, p.EventDate, p.EventTime, p.EventLocation).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a post
func (r *ClubPostRepository) GetByID(ctx context.Context, id int64) (*models.ClubPost, error) {
	sql, args, err := r.selectPosts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	p, err := scanClubPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Post not found")
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return p, nil
}

// ListByClub returns the posts of a club, newest first
func (r *ClubPostRepository) ListByClub(ctx context.Context, clubID int64) ([]*models.ClubPost, error) {
	sql, args, err := r.selectPosts().
		Where(squirrel.Eq{"p.club_id": clubID}).
		OrderBy("p.created_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	posts := []*models.ClubPost{}
	for rows.Next() {
		p, err := scanClubPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Delete removes a post
func (r *ClubPostRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, "club_posts", id, "Post not found")
}

func scanClubPost(row pgx.Row) (*models.ClubPost, error) {
	var p models.ClubPost
	var a models.UserSummary
	err := row.Scan(
		&p.ID, &p.ClubID, &p.CreatedBy, &p.Type, &p.Title, &p.Content,
		&p.EventDate, &p.EventTime, &p.EventLocation, &p.CreatedAt,
		&a.ID, &a.Name, &a.Email, &a.Role,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &a
	return &p, nil
}
