// Package cloud builds the shared AWS SDK configuration.
package cloud

import (
	"context"
	"fmt"

	"product-app/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// LoadAWSConfig resolves region and credentials. Static keys are used when
// both are set, otherwise the SDK default chain applies.
func LoadAWSConfig(ctx context.Context, c utils.AWSConfig) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// Endpoint returns the override endpoint for SDK clients, or nil for the
// regional AWS default.
func Endpoint(c utils.AWSConfig) *string {
	if c.Endpoint == "" {
		return nil
	}
	return aws.String(c.Endpoint)
}
