package loader

import (
	"context"
	"fmt"

	"courseplanner/pkg/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// selectCourses reads rows in storage order. Sorting here would hand the
// tree presorted keys.
const selectCourses = `SELECT number, COALESCE(name, ''), COALESCE(prerequisites, '{}') FROM courses`

// rows is the subset of pgx.Rows used while scanning.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

func (l *loader) loadPostgres(ctx context.Context, dsn string, store *catalog.Store) (Result, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return Result{}, fmt.Errorf("%w '%s': %w", ErrOpen, Describe(dsn), err)
	}
	defer pool.Close()

	r, err := pool.Query(ctx, selectCourses)
	if err != nil {
		return Result{}, fmt.Errorf("%w '%s': %w", ErrOpen, Describe(dsn), err)
	}

	return scanCourses(r, store, l.log)
}

func scanCourses(r rows, store *catalog.Store, log *zap.Logger) (Result, error) {
	defer r.Close()

	var res Result
	for r.Next() {
		var number, name string
		var prerequisites []string
		if err := r.Scan(&number, &name, &prerequisites); err != nil {
			return res, fmt.Errorf("failed to scan course row %d: %w", res.Records+1, err)
		}

		fields := append([]string{number, name}, prerequisites...)
		course := courseFromFields(fields)
		if course.Number == "" {
			log.Debug("row has an empty course number", zap.Int("row", res.Records+1))
		}
		store.Insert(course)
		res.Records++
	}

	if err := r.Err(); err != nil {
		return res, fmt.Errorf("failed to read course rows: %w", err)
	}
	return res, nil
}
