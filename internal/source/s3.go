package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/noelruault/lazygrid/internal/aws"
)

type sizer interface {
	ObjectSize(ctx context.Context, bucket, key string) (int64, error)
}

// openS3 downloads the object into a temporary file carrying the key's
// extension and opens it as a local file.
func openS3(ctx context.Context, uri string, opts Options) (*Dataset, error) {
	loc, err := aws.ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("%s: %w", uri, ErrNoFetcher)
	}
	if s, ok := opts.Fetcher.(sizer); ok && opts.MaxBytes > 0 {
		size, err := s.ObjectSize(ctx, loc.Bucket, loc.Key)
		if err != nil {
			return nil, err
		}
		if size > opts.MaxBytes {
			return nil, fmt.Errorf("%s is %d bytes: %w (limit %d)", uri, size, ErrTooLarge, opts.MaxBytes)
		}
	}

	tmp, err := os.CreateTemp("", "lazygrid-*"+strings.ToLower(path.Ext(loc.Key)))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	n, err := opts.Fetcher.DownloadObject(ctx, loc.Bucket, loc.Key, tmp)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", uri, err)
	}
	opts.Logger.Info("downloaded object",
		zap.String("bucket", loc.Bucket), zap.String("key", loc.Key), zap.Int64("bytes", n))

	ds, err := openFile(ctx, tmp.Name(), opts)
	if err != nil {
		return nil, err
	}
	// xlsx and sqlite loaders append ":sheet" or ":table" to the file name
	name := path.Base(loc.Key)
	if _, suffix, ok := strings.Cut(ds.Name, ":"); ok {
		name += ":" + suffix
	}
	ds.Name = name
	return ds, nil
}
