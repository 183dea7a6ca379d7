package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository works unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// translateWriteError maps constraint violations to client errors.
func translateWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewAppError(409, what+" already exists", err)
		case "23503": // foreign_key_violation
			return apperrors.NewAppError(400, what+" references a record that does not exist", err)
		case "23514": // check_violation
			return apperrors.NewAppError(400, what+" has invalid values", err)
		}
	}
	return apperrors.NewAppError(500, "failed to save "+what, err)
}

// collect runs query and maps every row onto T by column name.
func collect[T any](ctx context.Context, db DBTX, what, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query "+what, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect "+what+" rows", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// collectOne is collect for lookups by key; no row means ErrNotFound.
func collectOne[T any](ctx context.Context, db DBTX, what, query string, args ...any) (*T, error) {
	items, err := collect[T](ctx, db, what, query, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError(what + " not found")
	}
	return &items[0], nil
}

// execOne runs a single-row update; zero affected rows means NotFound.
func (r *BaseRepository) execOne(ctx context.Context, what, query string, args ...any) error {
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, what)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return nil
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
// Every "?" in one condition refers to that condition's single argument.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET when limit is positive.
func (w *whereBuilder) page(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
