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
	"github.com/campusconnect/backend/internal/pkg/dberrors"
)

// MembershipTable describes one bounded member collection: the entity table, the
// join table holding its members, the capacity column and the predicate that must
// hold for users to join on their own.
type MembershipTable struct {
	EntityTable  string
	MemberTable  string
	EntityKey    string
	CapacityExpr string // NULL means unlimited
	JoinableExpr string

	NotFoundMsg      string
	FullMsg          string
	NotJoinableMsg   string
	AlreadyMemberMsg string
	NotMemberMsg     string
}

// Membership collections
var (
	GroupMembers = MembershipTable{
		EntityTable:      "study_groups",
		MemberTable:      "study_group_members",
		EntityKey:        "group_id",
		CapacityExpr:     "max_members",
		JoinableExpr:     "visibility = 'public'",
		NotFoundMsg:      "Group not found",
		FullMsg:          "Group is full",
		NotJoinableMsg:   "Cannot join private group",
		AlreadyMemberMsg: "Already a member",
		NotMemberMsg:     "Not a member of this group",
	}
	ClubMembers = MembershipTable{
		EntityTable:      "clubs",
		MemberTable:      "club_members",
		EntityKey:        "club_id",
		CapacityExpr:     "team_size",
		JoinableExpr:     "status = 'approved'",
		NotFoundMsg:      "Club not found",
		FullMsg:          "Club has reached its team size",
		NotJoinableMsg:   "Club must be approved before accepting members",
		AlreadyMemberMsg: "User is already a member of this club",
		NotMemberMsg:     "User is not a member of this club",
	}
	EventAttendees = MembershipTable{
		EntityTable:      "events",
		MemberTable:      "event_attendees",
		EntityKey:        "event_id",
		CapacityExpr:     "max_attendees",
		JoinableExpr:     "status = 'approved'",
		NotFoundMsg:      "Event not found",
		FullMsg:          "Event is full",
		NotJoinableMsg:   "Event is not open for RSVP",
		AlreadyMemberMsg: "Already attending this event",
		NotMemberMsg:     "Not attending this event",
	}
	ProjectMembers = MembershipTable{
		EntityTable:      "projects",
		MemberTable:      "project_members",
		EntityKey:        "project_id",
		CapacityExpr:     "max_members",
		JoinableExpr:     "FALSE",
		NotFoundMsg:      "Project not found",
		FullMsg:          "Project team is full",
		NotJoinableMsg:   "Projects are joined through applications",
		AlreadyMemberMsg: "Already a member of this project",
		NotMemberMsg:     "Not a member of this project",
	}
)

// IMembershipRepository is the member store of one collection
type IMembershipRepository interface {
	Join(ctx context.Context, entityID, userID int64) error
	Add(ctx context.Context, entityID, userID int64) error
	Remove(ctx context.Context, entityID, userID int64) error
	IsMember(ctx context.Context, entityID, userID int64) (bool, error)
	Count(ctx context.Context, entityID int64) (int, error)
	ListMembers(ctx context.Context, entityID int64) ([]models.UserSummary, error)
}

// MembershipRepository stores the members of one collection
type MembershipRepository struct {
	db    *pgxpool.Pool
	sb    squirrel.StatementBuilderType
	table MembershipTable
}

// NewMembershipRepository creates a member store for table
func NewMembershipRepository(pool *pgxpool.Pool, table MembershipTable) *MembershipRepository {
	return &MembershipRepository{
		db:    pool,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table: table,
	}
}

// Table returns the collection descriptor
func (r *MembershipRepository) Table() MembershipTable { return r.table }

// Join admits userID on their own behalf: the entity must currently accept members
func (r *MembershipRepository) Join(ctx context.Context, entityID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return r.AdmitTx(ctx, tx, entityID, userID, true)
	})
}

// Add admits userID on an owner's or administrator's behalf. Capacity still applies.
func (r *MembershipRepository) Add(ctx context.Context, entityID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return r.AdmitTx(ctx, tx, entityID, userID, false)
	})
}

// AdmitTx inserts a membership inside tx. The entity row is locked so admissions to
// the same entity are serialized and the capacity check cannot be raced.
func (r *MembershipRepository) AdmitTx(ctx context.Context, tx pgx.Tx, entityID, userID int64, requireJoinable bool) error {
	t := r.table

	sql, args, err := r.sb.Select(t.CapacityExpr, t.JoinableExpr).
		From(t.EntityTable).
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	var (
		capacity *int
		joinable bool
	)
	if err := tx.QueryRow(ctx, sql, args...).Scan(&capacity, &joinable); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError(t.NotFoundMsg)
		}
		return fmt.Errorf("error locking %s: %w", t.EntityTable, err)
	}

	if requireJoinable && !joinable {
		return apperrors.NewCustomError(apperrors.ErrNotJoinable, t.NotJoinableMsg)
	}

	member, err := r.isMember(ctx, tx, entityID, userID)
	if err != nil {
		return err
	}
	if member {
		return apperrors.NewCustomError(apperrors.ErrAlreadyMember, t.AlreadyMemberMsg)
	}

	if capacity != nil {
		count, err := r.count(ctx, tx, entityID)
		if err != nil {
			return err
		}
		if count >= *capacity {
			return apperrors.NewCapacityExceededError(t.FullMsg)
		}
	}

	sql, args, err = r.sb.Insert(t.MemberTable).
		Columns(t.EntityKey, "user_id").
		Values(entityID, userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return apperrors.NewCustomError(apperrors.ErrAlreadyMember, t.AlreadyMemberMsg)
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error inserting member: %w", err)
	}
	return nil
}

// Remove deletes a membership. Removing a non-member is a bad request.
func (r *MembershipRepository) Remove(ctx context.Context, entityID, userID int64) error {
	return r.RemoveTx(ctx, r.db, entityID, userID)
}

// RemoveTx deletes a membership using q
func (r *MembershipRepository) RemoveTx(ctx context.Context, q db.DBTX, entityID, userID int64) error {
	t := r.table
	sql, args, err := r.sb.Delete(t.MemberTable).
		Where(squirrel.Eq{t.EntityKey: entityID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewCustomError(apperrors.ErrNotMember, t.NotMemberMsg)
	}
	return nil
}

// RemoveAllTx deletes every membership of an entity
func (r *MembershipRepository) RemoveAllTx(ctx context.Context, q db.DBTX, entityID int64) error {
	sql, args, err := r.sb.Delete(r.table.MemberTable).
		Where(squirrel.Eq{r.table.EntityKey: entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing members: %w", err)
	}
	return nil
}

// IsMember reports whether userID belongs to the entity
func (r *MembershipRepository) IsMember(ctx context.Context, entityID, userID int64) (bool, error) {
	return r.isMember(ctx, r.db, entityID, userID)
}

func (r *MembershipRepository) isMember(ctx context.Context, q db.DBTX, entityID, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From(r.table.MemberTable).
		Where(squirrel.Eq{r.table.EntityKey: entityID, "user_id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return exists, nil
}

// Count returns the number of members of an entity
func (r *MembershipRepository) Count(ctx context.Context, entityID int64) (int, error) {
	return r.count(ctx, r.db, entityID)
}

func (r *MembershipRepository) count(ctx context.Context, q db.DBTX, entityID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From(r.table.MemberTable).
		Where(squirrel.Eq{r.table.EntityKey: entityID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// ListMembers returns member summaries in join order
func (r *MembershipRepository) ListMembers(ctx context.Context, entityID int64) ([]models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.name", "u.email", "u.role").
		From(r.table.MemberTable + " m").
		Join("users u ON u.id = m.user_id").
		Where(squirrel.Eq{"m." + r.table.EntityKey: entityID}).
		OrderBy("m.joined_at", "u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	members := []models.UserSummary{}
	for rows.Next() {
		var m models.UserSummary
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
