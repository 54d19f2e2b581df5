package dberrors

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique violation. When
// constraintNames are given the violated constraint must be one of them.
func IsUniqueViolation(err error, constraintNames ...string) bool {
	return hasCode(err, pgerrcode.UniqueViolation, constraintNames)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error, constraintNames ...string) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation, constraintNames)
}

// IsCheckViolation reports whether err is a PostgreSQL check constraint violation.
func IsCheckViolation(err error, constraintNames ...string) bool {
	return hasCode(err, pgerrcode.CheckViolation, constraintNames)
}

func hasCode(err error, code string, constraintNames []string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	for _, name := range constraintNames {
		if pgErr.ConstraintName == name {
			return true
		}
	}
	return false
}
