package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/campusconnect/backend/internal/db"
	"github.com/campusconnect/backend/internal/pkg/apperrors"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// creatorColumns selects the owner summary joined as "cu"
var creatorColumns = []string{"cu.id", "cu.name", "cu.email", "cu.role"}

// countTotal runs SELECT COUNT(*) over from/where
func countTotal(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, from string, where squirrel.Sqlizer) (int64, error) {
	query := sb.Select("COUNT(*)").From(from)
	if where != nil {
		query = query.Where(where)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}

// shrinkCapacityCheck locks the entity row and fails when the new capacity would be
// below the current number of members
func shrinkCapacityCheck(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, t MembershipTable, entityID int64, capacity *int) error {
	sql, args, err := sb.Select("1").
		From(t.EntityTable).
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	var one int
	if err := tx.QueryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError(t.NotFoundMsg)
		}
		return fmt.Errorf("error locking %s: %w", t.EntityTable, err)
	}
	if capacity == nil {
		return nil
	}

	count, err := countTotal(ctx, tx, sb, t.MemberTable, squirrel.Eq{t.EntityKey: entityID})
	if err != nil {
		return err
	}
	if int64(*capacity) < count {
		return apperrors.NewBadRequestError(fmt.Sprintf("Capacity cannot be lower than the current member count (%d)", count))
	}
	return nil
}

// deleteByID deletes one row and reports NotFound when nothing matched
func deleteByID(ctx context.Context, q db.DBTX, sb squirrel.StatementBuilderType, table string, id int64, notFoundMsg string) error {
	sql, args, err := sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(notFoundMsg)
	}
	return nil
}
