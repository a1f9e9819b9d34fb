package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"conventions/internal/domain"
)

// Postgres error codes translated by the gateway.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Gateway runs single statements against the database. Every write runs in its
// own transaction; reads use whatever pooled connection database/sql hands out.
type Gateway struct {
	DB *sql.DB
}

// NewGateway returns a Gateway over db.
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{DB: db}
}

// Insert executes an INSERT ... RETURNING id statement and returns the generated id.
func (g *Gateway) Insert(ctx context.Context, query string, args ...any) (string, error) {
	var id string
	err := g.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, args...).Scan(&id)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Exec executes a write statement and returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := g.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Count executes a SELECT COUNT(*) statement.
func (g *Gateway) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := g.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (g *Gateway) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// list runs a windowed select and scans every row with scan. It never returns a nil slice.
func list[T any](ctx context.Context, g *Gateway, query string, scan func(rowScanner) (*T, error), p domain.PaginationParams, args ...any) ([]*T, error) {
	args = append(args, p.Limit(), p.Offset())
	rows, err := g.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// get reads the first row of a single-row window. Returns domain.ErrNotFound when empty.
func get[T any](ctx context.Context, g *Gateway, query string, scan func(rowScanner) (*T, error), args ...any) (*T, error) {
	items, err := list(ctx, g, query, scan, domain.PaginationParams{Page: 1, PageSize: 1}, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items[0], nil
}

// parseID converts a surrogate key. Ids that are not integers cannot match any row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func isUniqueViolation(err error) bool { return pqCode(err) == pqUniqueViolation }

func isForeignKeyViolation(err error) bool { return pqCode(err) == pqForeignKeyViolation }

// translateWriteErr maps constraint violations on insert/update to domain errors.
func translateWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("referenced row %w: %v", domain.ErrNotFound, err)
	}
	return err
}

// translateDeleteErr maps a restricted delete to domain.ErrStillReferenced.
func translateDeleteErr(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrStillReferenced, err)
	}
	return err
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
