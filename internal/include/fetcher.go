// Where: resolver/internal/include/fetcher.go
// What: Fetcher for AWS::Include transform locations.
// Why: The evaluator only hands back a location string; fetching is the caller's job.
package include

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 client the fetcher needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher retrieves include documents from s3:// locations or local paths.
type Fetcher struct {
	client ObjectGetter
}

// Options override SDK defaults, mainly for local S3-compatible endpoints.
type Options struct {
	Endpoint string
}

// NewFetcher builds a fetcher with a real S3 client.
func NewFetcher(ctx context.Context, opts Options) (*Fetcher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
			options.UsePathStyle = true
		}
	})
	return &Fetcher{client: client}, nil
}

// NewFetcherWithClient builds a fetcher over an existing client.
func NewFetcherWithClient(client ObjectGetter) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves the document behind a resolved include location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, key, err := SplitS3URL(location)
		if err != nil {
			return nil, err
		}
		if f.client == nil {
			return nil, fmt.Errorf("s3 client is nil")
		}
		resp, err := f.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(location)
}

// SplitS3URL splits s3://bucket/key into its parts.
func SplitS3URL(location string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed s3 location %q", location)
	}
	return parts[0], parts[1], nil
}
