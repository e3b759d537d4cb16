package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrInvalidS3URI is returned for URIs that are not s3://bucket/key.
var ErrInvalidS3URI = errors.New("invalid s3 uri")

// S3Location identifies an object in S3
type S3Location struct {
	Bucket string
	Key    string
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (S3Location, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return S3Location{}, fmt.Errorf("%w: %q", ErrInvalidS3URI, uri)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return S3Location{}, fmt.Errorf("%w: %q needs a bucket and an object key", ErrInvalidS3URI, uri)
	}
	return S3Location{Bucket: bucket, Key: key}, nil
}

// String returns the s3:// form of the location.
func (l S3Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ObjectSize returns the size of an object in bytes.
func (c *Client) ObjectSize(ctx context.Context, bucket, key string) (int64, error) {
	out, err := c.S3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to head object: %w", err)
	}
	return getInt64(out.ContentLength), nil
}

// DownloadObject downloads an object into w using concurrent ranged gets.
func (c *Client) DownloadObject(ctx context.Context, bucket, key string, w io.WriterAt) (int64, error) {
	if c.S3 == nil {
		return 0, fmt.Errorf("S3 client not initialized")
	}
	downloader := manager.NewDownloader(c.S3)
	n, err := downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to download object: %w", err)
	}
	return n, nil
}

// Helper function to get int64 pointer value
func getInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
