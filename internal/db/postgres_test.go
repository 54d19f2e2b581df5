package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error   { f.committed = true; return nil }
func (f *fakeTx) Rollback(context.Context) error { f.rolledBack = true; return nil }

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransactionCommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), b, func(ctx context.Context, tx pgx.Tx) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	sentinel := errors.New("group is full")

	err := WithTransaction(context.Background(), b, func(context.Context, pgx.Tx) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), b, func(context.Context, pgx.Tx) error {
			panic("boom")
		})
	})
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransactionBeginFailure(t *testing.T) {
	b := &fakeBeginner{err: errors.New("pool closed")}

	err := WithTransaction(context.Background(), b, func(context.Context, pgx.Tx) error {
		t.Fatal("must not run")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}
