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

// IEventRepository defines event persistence
type IEventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter, offset, limit uint64) ([]*models.Event, int64, error)
	ListByCreator(ctx context.Context, userID int64) ([]*models.Event, error)
	SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error)
}

var eventColumns = []string{
	"e.id", "e.title", "e.description", "e.category", "e.date", "e.time", "e.location_type",
	"e.location_detail", "e.agenda", "e.max_attendees", "e.contact_info", "e.created_by", "e.status",
	"e.created_at", "e.updated_at",
	"(SELECT COUNT(*) FROM event_attendees a WHERE a.event_id = e.id)",
}

// EventRepository handles database operations for events
type EventRepository struct {
	db        *pgxpool.Pool
	sb        squirrel.StatementBuilderType
	attendees *MembershipRepository
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(pool *pgxpool.Pool, attendees *MembershipRepository) *EventRepository {
	return &EventRepository{
		db:        pool,
		sb:        squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		attendees: attendees,
	}
}

func (r *EventRepository) selectEvents() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, eventColumns...), creatorColumns...)...).
		From("events e").
		Join("users cu ON cu.id = e.created_by")
}

// Create inserts a pending event
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("title", "description", "category", "date", "time", "location_type", "location_detail",
			"agenda", "max_attendees", "contact_info", "created_by", "status").
		Values(e.Title, e.Description, e.Category, e.Date, e.Time, e.LocationType, e.LocationDetail,
			e.Agenda, e.MaxAttendees, e.ContactInfo, e.CreatedBy, e.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event regardless of status
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := r.selectEvents().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(EventAttendees.NotFoundMsg)
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return e, nil
}

// List returns events matching the filter in date order. A zero limit returns every row.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter, offset, limit uint64) ([]*models.Event, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"e.status": *filter.Status})
	}
	if category := filter.CategoryFilter(); category != "" {
		where = append(where, squirrel.Eq{"e.category": category})
	}
	if lt := filter.LocationTypeFilter(); lt != "" {
		where = append(where, squirrel.Eq{"e.location_type": lt})
	}

	total, err := countTotal(ctx, r.db, r.sb, "events e", where)
	if err != nil {
		return nil, 0, err
	}

	query := r.selectEvents().Where(where).OrderBy("e.date", "e.id").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	events, err := r.list(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByCreator returns the events created by userID in any status
func (r *EventRepository) ListByCreator(ctx context.Context, userID int64) ([]*models.Event, error) {
	return r.list(ctx, r.selectEvents().Where(squirrel.Eq{"e.created_by": userID}).OrderBy("e.date", "e.id"))
}

func (r *EventRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SetStatus stores a new approval status
func (r *EventRepository) SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	return setApprovalStatus(ctx, r.db, r.sb, "events", id, status, EventAttendees.NotFoundMsg)
}

// Delete removes the attendees and then the event in one transaction
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.attendees.RemoveAllTx(ctx, tx, id); err != nil {
			return err
		}
		return deleteByID(ctx, tx, r.sb, "events", id, EventAttendees.NotFoundMsg)
	})
}

// CountByStatus counts events, optionally restricted to one status
func (r *EventRepository) CountByStatus(ctx context.Context, status *models.ApprovalStatus) (int64, error) {
	var where squirrel.Sqlizer
	if status != nil {
		where = squirrel.Eq{"status": *status}
	}
	return countTotal(ctx, r.db, r.sb, "events", where)
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var cu models.UserSummary
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.Time, &e.LocationType,
		&e.LocationDetail, &e.Agenda, &e.MaxAttendees, &e.ContactInfo, &e.CreatedBy, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &e.AttendeeCount,
		&cu.ID, &cu.Name, &cu.Email, &cu.Role,
	)
	if err != nil {
		return nil, err
	}
	e.Creator = &cu
	return &e, nil
}
