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

// ApplicationPairConstraint is the unique constraint on (project_id, applicant_id)
const ApplicationPairConstraint = "project_applications_project_id_applicant_id_key"

const errApplicationNotFound = "Application not found"

// IProjectRepository defines project and application persistence
type IProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	ListOpen(ctx context.Context, filter models.ProjectFilter, offset, limit uint64) ([]*models.Project, int64, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)

	Apply(ctx context.Context, a *models.ProjectApplication) error
	ListApplications(ctx context.Context, projectID int64) ([]*models.ProjectApplication, error)
	ApproveApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error)
	RejectApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error)
	Leave(ctx context.Context, projectID, userID int64) error
}

var projectColumns = []string{
	"p.id", "p.title", "p.description", "p.tech_stack", "p.max_members", "p.deadline", "p.status",
	"p.created_by", "p.created_at", "p.updated_at",
	"(SELECT COUNT(*) FROM project_members m WHERE m.project_id = p.id)",
}

// ProjectRepository handles database operations for projects and their applications
type ProjectRepository struct {
	db      *pgxpool.Pool
	sb      squirrel.StatementBuilderType
	members *MembershipRepository
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool, members *MembershipRepository) *ProjectRepository {
	return &ProjectRepository{
		db:      pool,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		members: members,
	}
}

func (r *ProjectRepository) selectProjects() squirrel.SelectBuilder {
	return r.sb.Select(append(append([]string{}, projectColumns...), creatorColumns...)...).
		From("projects p").
		Join("users cu ON cu.id = p.created_by")
}

// Create inserts the project and admits its creator as the first member
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("projects").
			Columns("title", "description", "tech_stack", "max_members", "deadline", "status", "created_by").
			Values(p.Title, p.Description, nonNil(p.TechStack), p.MaxMembers, p.Deadline, p.Status, p.CreatedBy).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}
		if err := r.members.AdmitTx(ctx, tx, p.ID, p.CreatedBy, false); err != nil {
			return err
		}
		p.MemberCount = 1
		return nil
	})
}

// GetByID retrieves a project
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	sql, args, err := r.selectProjects().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	p, err := scanProject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(ProjectMembers.NotFoundMsg)
		}
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}
	return p, nil
}

// ListOpen returns open projects matching the filter, newest first
func (r *ProjectRepository) ListOpen(ctx context.Context, filter models.ProjectFilter, offset, limit uint64) ([]*models.Project, int64, error) {
	where := squirrel.And{squirrel.Eq{"p.status": models.ProjectOpen}}
	if t := strings.TrimSpace(filter.Title); t != "" {
		where = append(where, squirrel.Expr("p.title ILIKE ?", containsPattern(t)))
	}
	if stack := models.NormalizeTechStack(filter.TechStack); len(stack) > 0 {
		lowered := make([]string, len(stack))
		for i, s := range stack {
			lowered[i] = strings.ToLower(s)
		}
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM unnest(p.tech_stack) AS t(name) WHERE lower(t.name) = ANY(?))", lowered))
	}

	total, err := countTotal(ctx, r.db, r.sb, "projects p", where)
	if err != nil {
		return nil, 0, err
	}

	projects, err := r.list(ctx, r.selectProjects().Where(where).OrderBy("p.created_at DESC", "p.id DESC").Offset(offset).Limit(limit))
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// ListForUser returns the projects userID owns or belongs to
func (r *ProjectRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	return r.list(ctx, r.selectProjects().
		Where(squirrel.Or{
			squirrel.Eq{"p.created_by": userID},
			squirrel.Expr("EXISTS (SELECT 1 FROM project_members m WHERE m.project_id = p.id AND m.user_id = ?)", userID),
		}).
		OrderBy("p.created_at DESC", "p.id DESC"))
}

func (r *ProjectRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Project, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update writes the mutable columns. Max members may not drop below the member count.
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := shrinkCapacityCheck(ctx, tx, r.sb, ProjectMembers, p.ID, &p.MaxMembers); err != nil {
			return err
		}

		sql, args, err := r.sb.Update("projects").
			SetMap(map[string]interface{}{
				"title":       p.Title,
				"description": p.Description,
				"tech_stack":  nonNil(p.TechStack),
				"max_members": p.MaxMembers,
				"deadline":    p.Deadline,
				"status":      p.Status,
				"updated_at":  squirrel.Expr("NOW()"),
			}).
			Where(squirrel.Eq{"id": p.ID}).
			Suffix("RETURNING updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.UpdatedAt); err != nil {
			return fmt.Errorf("error updating project: %w", err)
		}
		return nil
	})
}

// Delete removes members, applications and the project in one transaction
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.members.RemoveAllTx(ctx, tx, id); err != nil {
			return err
		}
		sql, args, err := r.sb.Delete("project_applications").Where(squirrel.Eq{"project_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting applications: %w", err)
		}
		return deleteByID(ctx, tx, r.sb, "projects", id, ProjectMembers.NotFoundMsg)
	})
}

// Count returns the number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	return countTotal(ctx, r.db, r.sb, "projects", nil)
}

// Apply stores a pending application. One application per project and applicant.
func (r *ProjectRepository) Apply(ctx context.Context, a *models.ProjectApplication) error {
	a.Status = models.ApplicationPending
	sql, args, err := r.sb.Insert("project_applications").
		Columns("project_id", "applicant_id", "message", "status").
		Values(a.ProjectID, a.ApplicantID, a.Message, a.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err, ApplicationPairConstraint):
			return apperrors.NewConflictError("Already applied to this project")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError(ProjectMembers.NotFoundMsg)
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// ListApplications returns the applications of a project, oldest first
func (r *ProjectRepository) ListApplications(ctx context.Context, projectID int64) ([]*models.ProjectApplication, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.project_id", "a.applicant_id", "a.message", "a.status", "a.created_at", "a.resolved_at",
		"u.id", "u.name", "u.email", "u.role",
	).
		From("project_applications a").
		Join("users u ON u.id = a.applicant_id").
		Where(squirrel.Eq{"a.project_id": projectID}).
		OrderBy("a.created_at", "a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	apps := []*models.ProjectApplication{}
	for rows.Next() {
		var a models.ProjectApplication
		var u models.UserSummary
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.ApplicantID, &a.Message, &a.Status, &a.CreatedAt, &a.ResolvedAt,
			&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		a.Applicant = &u
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}

// ApproveApplication marks a pending application approved and admits the applicant
// in the same transaction. When the team is full nothing changes.
func (r *ProjectRepository) ApproveApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error) {
	return r.resolveApplication(ctx, projectID, applicantID, models.DecisionAccept)
}

// RejectApplication marks a pending application rejected
func (r *ProjectRepository) RejectApplication(ctx context.Context, projectID, applicantID int64) (*models.ProjectApplication, error) {
	return r.resolveApplication(ctx, projectID, applicantID, models.DecisionReject)
}

func (r *ProjectRepository) resolveApplication(ctx context.Context, projectID, applicantID int64, d models.Decision) (*models.ProjectApplication, error) {
	var app models.ProjectApplication
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select("id", "project_id", "applicant_id", "message", "status", "created_at").
			From("project_applications").
			Where(squirrel.Eq{"project_id": projectID, "applicant_id": applicantID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(
			&app.ID, &app.ProjectID, &app.ApplicantID, &app.Message, &app.Status, &app.CreatedAt,
		); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(errApplicationNotFound)
			}
			return fmt.Errorf("error locking application: %w", err)
		}

		next, err := app.Status.Resolve(d)
		if err != nil {
			return err
		}

		if next == models.ApplicationApproved {
			if err := r.members.AdmitTx(ctx, tx, projectID, applicantID, false); err != nil {
				return err
			}
		}

		sql, args, err = r.sb.Update("project_applications").
			Set("status", next).
			Set("resolved_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": app.ID}).
			Suffix("RETURNING resolved_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&app.ResolvedAt); err != nil {
			return fmt.Errorf("error updating application: %w", err)
		}
		app.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Leave removes the membership and the caller's application so they may apply again
func (r *ProjectRepository) Leave(ctx context.Context, projectID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.members.RemoveTx(ctx, tx, projectID, userID); err != nil {
			return err
		}
		sql, args, err := r.sb.Delete("project_applications").
			Where(squirrel.Eq{"project_id": projectID, "applicant_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error deleting application: %w", err)
		}
		return nil
	})
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	var cu models.UserSummary
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.TechStack, &p.MaxMembers, &p.Deadline, &p.Status,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.MemberCount,
		&cu.ID, &cu.Name, &cu.Email, &cu.Role,
	)
	if err != nil {
		return nil, err
	}
	p.Creator = &cu
	return &p, nil
}
