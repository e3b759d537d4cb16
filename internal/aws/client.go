package aws

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Environment variables for static credentials that bypass the shared
// config chain.
const (
	EnvAccessKeyID     = "LAZYGRID_AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "LAZYGRID_AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "LAZYGRID_AWS_SESSION_TOKEN"
)

// Client wraps AWS service clients
type Client struct {
	S3     *s3.Client
	Region string
}

// ClientOptions select the profile and region used to build a Client.
type ClientOptions struct {
	Profile string
	Region  string
}

// NewClient creates a new AWS client. Static credentials from the
// LAZYGRID_AWS_* variables take precedence over the profile.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if id, secret := os.Getenv(EnvAccessKeyID), os.Getenv(EnvSecretAccessKey); id != "" && secret != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, os.Getenv(EnvSessionToken)),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{
		S3:     s3.NewFromConfig(cfg),
		Region: cfg.Region,
	}, nil
}

// GetRegion returns the configured AWS region
func (c *Client) GetRegion() string {
	return c.Region
}
