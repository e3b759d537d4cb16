// Package source loads tabular datasets into grid columns and rows.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/noelruault/lazygrid/internal/grid"
)

var (
	// ErrUnsupportedFormat is returned for sources whose format cannot be inferred.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrNoHeader is returned when a source has no header record.
	ErrNoHeader = errors.New("source has no header row")
	// ErrNoFetcher is returned for s3:// sources when no S3 client was configured.
	ErrNoFetcher = errors.New("no S3 client configured")
	// ErrTooLarge is returned when a remote object exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("object too large")
)

// ObjectFetcher downloads remote objects.
type ObjectFetcher interface {
	DownloadObject(ctx context.Context, bucket, key string, w io.WriterAt) (int64, error)
}

// Options control how a source is read.
type Options struct {
	Sheet       string
	Table       string
	Limit       int
	Frozen      int
	ColumnWidth int
	MaxWidth    int
	MaxBytes    int64

	Fetcher ObjectFetcher
	Logger  *zap.Logger
}

// Dataset is a loaded table.
type Dataset struct {
	Name    string
	Columns []grid.Column
	Rows    []grid.Row
}

// Open loads the dataset behind uri. Supported forms are local .csv, .tsv,
// .xlsx, .db/.sqlite/.sqlite3 files, sqlite://path?table=name and
// s3://bucket/key pointing at any of the file formats.
func Open(ctx context.Context, uri string, opts Options) (*Dataset, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.Logger.Debug("opening source", zap.String("uri", uri))

	switch {
	case strings.HasPrefix(uri, "s3://"):
		return openS3(ctx, uri, opts)
	case strings.HasPrefix(uri, "sqlite://"):
		path, table := parseSQLiteURI(uri)
		if table != "" {
			opts.Table = table
		}
		return openSQLite(ctx, path, opts)
	}
	return openFile(ctx, uri, opts)
}

func openFile(ctx context.Context, path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return openCSV(path, ',', opts)
	case ".tsv":
		return openCSV(path, '\t', opts)
	case ".xlsx", ".xlsm":
		return openXLSX(path, opts)
	case ".db", ".sqlite", ".sqlite3":
		return openSQLite(ctx, path, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// build turns a header and records into a dataset. Records shorter than the
// header leave the missing cells empty; extra fields are dropped.
func build(name string, header []string, records [][]string, opts Options) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoHeader)
	}
	width := opts.ColumnWidth
	if width < 1 {
		width = 12
	}

	ds := &Dataset{Name: name, Columns: make([]grid.Column, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("col%d", i+1)
		}
		w := runewidth.StringWidth(h) + 1
		if w < width {
			w = width
		}
		ds.Columns[i] = grid.Column{
			Key:    fmt.Sprintf("c%d", i),
			Name:   h,
			Idx:    i,
			Width:  w,
			Frozen: i < opts.Frozen,
		}
	}

	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	ds.Rows = make([]grid.Row, 0, len(records))
	for _, rec := range records {
		row := make(grid.Row, len(header))
		for i := range header {
			if i < len(rec) {
				row[ds.Columns[i].Key] = rec[i]
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	fitWidths(ds, opts.MaxWidth)
	return ds, nil
}

// fitWidths widens columns to their longest value, growing no column past
// limit cells. Header widths are never reduced.
func fitWidths(ds *Dataset, limit int) {
	if limit <= 0 {
		return
	}
	for i := range ds.Columns {
		c := &ds.Columns[i]
		for _, row := range ds.Rows {
			w := runewidth.StringWidth(row.Value(c.Key)) + 1
			if w > limit {
				w = limit
			}
			if w > c.Width {
				c.Width = w
			}
		}
	}
}
