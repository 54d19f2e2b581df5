package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert club: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "clubs_name_key"})

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(err, "users_email_key", "clubs_name_key"))
	assert.False(t, IsUniqueViolation(err, "users_email_key"))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}

func TestIsForeignKeyAndCheckViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "connections_alumni_id_fkey"}
	check := &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "student_profiles_year_check"}

	assert.True(t, IsForeignKeyViolation(fk, "connections_alumni_id_fkey"))
	assert.True(t, IsCheckViolation(check))
	assert.False(t, IsCheckViolation(fk))
}
