package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inventario-api/pkg/apierror"
)

// Querier is the slice of pgx the repository needs; *pgxpool.Pool satisfies it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Descriptor is the per-entity schema entry: table identity, column order, and
// the two functions that tie a row to its Go struct. Columns[0] is the primary
// key. Values returns one value per column, in column order. Apply copies the
// set-and-different fields of a patch onto the entity and reports which
// columns changed.
type Descriptor[T any, P any, ID comparable] struct {
	Name      string
	Table     string
	Columns   []string
	Generated []string
	Values    func(*T) []any
	Apply     func(*T, *P) []string
}

// Repository implements the CRUD contract for one entity type, selected by its
// descriptor at construction time.
type Repository[T any, P any, ID comparable] struct {
	db   Querier
	desc Descriptor[T, P, ID]
}

func New[T any, P any, ID comparable](db Querier, desc Descriptor[T, P, ID]) *Repository[T, P, ID] {
	return &Repository[T, P, ID]{db: db, desc: desc}
}

func (r *Repository[T, P, ID]) Get(ctx context.Context, id ID) (T, error) {
	var zero T

	sql := fmt.Sprintf("%s WHERE %s = $1", r.selectSQL(), r.desc.Columns[0])
	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return zero, r.mapError("get", err)
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, apierror.NotFound(r.desc.Name, id)
	}
	if err != nil {
		return zero, r.mapError("get", err)
	}

	return entity, nil
}

func (r *Repository[T, P, ID]) List(ctx context.Context, skip int, limit int) ([]T, error) {
	if skip < 0 || limit < 0 {
		return nil, apierror.BadRequest("skip and limit must not be negative", fmt.Sprintf("skip=%d limit=%d", skip, limit))
	}

	sql := fmt.Sprintf("%s ORDER BY %s LIMIT $1 OFFSET $2", r.selectSQL(), r.desc.Columns[0])
	rows, err := r.db.Query(ctx, sql, limit, skip)
	if err != nil {
		return nil, r.mapError("list", err)
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, r.mapError("list", err)
	}
	if entities == nil {
		entities = []T{}
	}

	return entities, nil
}

func (r *Repository[T, P, ID]) Create(ctx context.Context, candidate T) (T, error) {
	var zero T

	cols, args := r.insertColumns(&candidate)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.desc.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(r.desc.Columns, ", "))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return zero, r.mapError("create", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, r.mapError("create", err)
	}

	return created, nil
}

// Update applies partial-update semantics: only fields set in the patch and
// differing from the stored record are written. An empty diff returns the
// existing record without touching storage.
func (r *Repository[T, P, ID]) Update(ctx context.Context, id ID, patch P) (T, error) {
	var zero T

	existing, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	changed := r.desc.Apply(&existing, &patch)
	if len(changed) == 0 {
		return existing, nil
	}

	values := r.desc.Values(&existing)
	set := make([]string, 0, len(changed))
	args := make([]any, 0, len(changed)+1)
	for i, col := range r.desc.Columns {
		if !slices.Contains(changed, col) {
			continue
		}
		args = append(args, values[i])
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		r.desc.Table,
		strings.Join(set, ", "),
		r.desc.Columns[0],
		len(args),
		strings.Join(r.desc.Columns, ", "))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return zero, r.mapError("update", err)
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		// Row vanished between the read and the write; last writer won.
		return zero, apierror.NotFound(r.desc.Name, id)
	}
	if err != nil {
		return zero, r.mapError("update", err)
	}

	return updated, nil
}

// Delete removes the record and returns its pre-deletion state as a receipt.
func (r *Repository[T, P, ID]) Delete(ctx context.Context, id ID) (T, error) {
	var zero T

	existing, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.desc.Table, r.desc.Columns[0])
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return zero, r.mapError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return zero, apierror.NotFound(r.desc.Name, id)
	}

	return existing, nil
}

func (r *Repository[T, P, ID]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(r.desc.Columns, ", "), r.desc.Table)
}

// insertColumns pairs columns with candidate values, leaving out generated
// columns the caller did not fill so storage assigns them.
func (r *Repository[T, P, ID]) insertColumns(candidate *T) ([]string, []any) {
	values := r.desc.Values(candidate)
	cols := make([]string, 0, len(r.desc.Columns))
	args := make([]any, 0, len(values))
	for i, col := range r.desc.Columns {
		if slices.Contains(r.desc.Generated, col) && isZero(values[i]) {
			continue
		}
		cols = append(cols, col)
		args = append(args, values[i])
	}

	return cols, args
}

// isZero only ever sees generated-column values, which are integer or string
// keys and timestamps.
func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case int16:
		return x == 0
	case int32:
		return x == 0
	case int64:
		return x == 0
	case int:
		return x == 0
	case string:
		return x == ""
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}

func (r *Repository[T, P, ID]) mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apierror.Conflict(r.desc.Name+" violates a unique constraint", pgErr.Detail)
		case "23503":
			return apierror.Conflict(r.desc.Name+" references a missing related record", pgErr.Detail)
		case "23502":
			return apierror.BadRequest(r.desc.Name+" is missing a required field", pgErr.ColumnName)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		// Covers unreachable storage and requests whose context is gone, so a
		// client disconnect does not log as a server error.
		return apierror.New("STORAGE_UNAVAILABLE", "storage backend is unreachable", err.Error(), http.StatusServiceUnavailable)
	}

	return fmt.Errorf("%s %s: %w", op, r.desc.Name, err)
}
