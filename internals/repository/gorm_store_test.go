package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

func TestGormTransaction_CommitsOnSuccess(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens"`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Transaction(context.Background(), func(tx Store) error {
		return tx.DeleteRefreshToken(context.Background(), id)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransaction_RollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "refresh_tokens"`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.Transaction(context.Background(), func(tx Store) error {
		return tx.DeleteRefreshToken(context.Background(), id)
	})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransaction_RollsBackAndRepanics(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = store.Transaction(context.Background(), func(tx Store) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransaction_NestedCallReusesTx(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := store.Transaction(context.Background(), func(tx Store) error {
		return tx.Transaction(context.Background(), func(inner Store) error {
			calls++
			assert.Same(t, tx, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFindChurch_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "churches"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := store.FindChurch(context.Background(), id)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"gorm not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_groups_church_name"}, ErrConflict},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, ErrForeignKey},
		{"pq unique", &pq.Error{Code: "23505", Constraint: "uq_cells_church_name"}, ErrConflict},
		{"pq foreign key", &pq.Error{Code: "23503"}, ErrForeignKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.in, "op"), tt.want)
		})
	}

	t.Run("other errors keep their cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := classify(cause, "save user")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "save user")
		assert.False(t, IsNotFound(err))
		assert.False(t, IsConflict(err))
	})

	assert.NoError(t, classify(nil, "op"))
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Offset: 0, Limit: DefaultLimit}, Page{Offset: -3}.Normalize())
	assert.Equal(t, Page{Offset: 20, Limit: MaxLimit}, Page{Offset: 20, Limit: 5000}.Normalize())
	assert.Equal(t, Page{Offset: 5, Limit: 25}, Page{Offset: 5, Limit: 25}.Normalize())
}
