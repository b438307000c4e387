package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// GormStore implements Store over a *gorm.DB. Inside Transaction the db is the tx handle.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle (health checks, migrations).
func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	// gorm rolls back and re-panics when fn panics
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// classify turns driver errors into the package sentinels and wraps everything else
// with the operation name.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Wrapf(ErrConflict, "%s: %s", op, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return errors.Wrapf(ErrForeignKey, "%s: %s", op, pgErr.ConstraintName)
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return errors.Wrapf(ErrConflict, "%s: %s", op, pqErr.Constraint)
		case pgForeignKeyViolation:
			return errors.Wrapf(ErrForeignKey, "%s: %s", op, pqErr.Constraint)
		}
	}

	return errors.Wrap(err, op)
}

// first loads one row into dst or returns ErrNotFound.
func first(q *gorm.DB, dst any, op string) error {
	return classify(q.Take(dst).Error, op)
}

func paged(q *gorm.DB, p Page) *gorm.DB {
	p = p.Normalize()
	return q.Offset(p.Offset).Limit(p.Limit)
}

func mustAffect(res *gorm.DB, op string) error {
	if res.Error != nil {
		return classify(res.Error, op)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
