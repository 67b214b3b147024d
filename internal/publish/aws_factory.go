// Where: cli/internal/publish/aws_factory.go
// What: AWS client factory for artifact publishing.
// Why: Encapsulate SDK configuration for AWS and S3-compatible local endpoints.
package publish

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/poruru/sls-dart/cli/internal/constants"
	"github.com/poruru/sls-dart/cli/internal/envutil"
)

const defaultAWSRegion = "us-east-1"

type ClientFactory interface {
	S3(ctx context.Context, endpoint string) (S3API, error)
	DynamoDB(ctx context.Context, endpoint string) (DynamoDBAPI, error)
}

// NewClientFactory returns the SDK-backed factory.
func NewClientFactory() ClientFactory {
	return awsClientFactory{}
}

type awsClientFactory struct{}

func (awsClientFactory) S3(ctx context.Context, endpoint string) (S3API, error) {
	cfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	endpoint = ResolveEndpoint(endpoint)
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})
	return awsS3Client{client: client}, nil
}

func (awsClientFactory) DynamoDB(ctx context.Context, endpoint string) (DynamoDBAPI, error) {
	cfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	endpoint = ResolveEndpoint(endpoint)
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})
	return awsDynamoClient{client: client}, nil
}

// ResolveEndpoint prefers the configured endpoint, then SLS_DART_ENDPOINT.
// Blank means the regular AWS endpoints.
func ResolveEndpoint(configured string) string {
	if value := strings.TrimSpace(configured); value != "" {
		return value
	}
	return envutil.Lookup(constants.EnvPublishEndpoint, "")
}

// loadAWSConfig uses static credentials when SLS_DART_ACCESS_KEY and
// SLS_DART_SECRET_KEY are set, otherwise the SDK's default chain.
func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(envutil.Lookup(constants.EnvAWSRegion, defaultAWSRegion)),
	}
	if envutil.IsSet(constants.EnvPublishAccess) && envutil.IsSet(constants.EnvPublishSecret) {
		creds := credentials.NewStaticCredentialsProvider(
			envutil.Lookup(constants.EnvPublishAccess, ""),
			envutil.Lookup(constants.EnvPublishSecret, ""),
			"",
		)
		opts = append(opts, config.WithCredentialsProvider(creds))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}
