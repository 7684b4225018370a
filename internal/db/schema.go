// Package db holds schema introspection helpers shared by the MySQL
// repositories.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func HasTable(ctx context.Context, q QueryRower, table string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return name.Valid && name.String != "", nil
}

func HasColumn(ctx context.Context, q QueryRower, table, column string) (bool, error) {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup column %s.%s: %w", table, column, err)
	}
	return name.Valid && name.String != "", nil
}

// MissingColumns returns the columns of want that table lacks, in order.
func MissingColumns(ctx context.Context, q QueryRower, table string, want ...string) ([]string, error) {
	var missing []string
	for _, col := range want {
		ok, err := HasColumn(ctx, q, table, col)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, col)
		}
	}
	return missing, nil
}
