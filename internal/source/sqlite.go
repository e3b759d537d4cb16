package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// parseSQLiteURI splits sqlite://path?table=name.
func parseSQLiteURI(uri string) (path, table string) {
	rest := strings.TrimPrefix(uri, "sqlite://")
	path, query, _ := strings.Cut(rest, "?")
	if q, err := url.ParseQuery(query); err == nil {
		table = q.Get("table")
	}
	return path, table
}

func openSQLite(ctx context.Context, path string, opts Options) (*Dataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	defer db.Close()

	table := opts.Table
	if table == "" {
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1",
		).Scan(&table)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s has no tables: %w", path, ErrNoHeader)
		}
		if err != nil {
			return nil, fmt.Errorf("list tables in %s: %w", path, err)
		}
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(table, `"`, `""`))
	args := []any{}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query table %q: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", table, err)
	}

	var records [][]string
	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %q: %w", table, err)
		}
		rec := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				rec[i] = v.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", table, err)
	}

	opts.Logger.Info("loaded table",
		zap.String("path", path), zap.String("table", table), zap.Int("rows", len(records)))
	return build(fmt.Sprintf("%s:%s", filepath.Base(path), table), header, records, opts)
}
