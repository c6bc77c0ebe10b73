// Where: resolver/internal/awsenv/context.go
// What: Live environment context from the AWS SDK.
// Why: Feed real region/account/partition values into the symbol source when asked.
package awsenv

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/poruru/edge-serverless-box/resolver/internal/symbols"
)

const defaultRegion = "us-east-1"

// Context carries the environment facts pseudo-parameters come from.
type Context struct {
	Region    string
	AccountID string
	Partition string
}

// Options override SDK defaults, mainly for local endpoints.
type Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load resolves the current region and account identity. This is the one
// collaborator that performs I/O; the evaluator itself never calls it.
func Load(ctx context.Context, opts Options) (Context, error) {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return Context{}, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	client := sts.NewFromConfig(cfg, func(options *sts.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Context{}, fmt.Errorf("resolve caller identity: %w", err)
	}

	return Context{
		Region:    region,
		AccountID: aws.ToString(identity.Account),
		Partition: symbols.PartitionForRegion(region),
	}, nil
}

func loadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}
