// Where: cli/internal/publish/aws_clients.go
// What: AWS SDK adapters for S3 and DynamoDB.
// Why: Map publisher types to SDK types.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsS3Client struct {
	client *s3.Client
}

func (c awsS3Client) PutObject(ctx context.Context, input PutObjectInput) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(input.Bucket),
		Key:           aws.String(input.Key),
		Body:          bytes.NewReader(input.Body),
		ContentLength: aws.Int64(int64(len(input.Body))),
		ContentType:   aws.String(input.ContentType),
		Metadata:      input.Metadata,
	})
	return err
}

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) PutItem(ctx context.Context, table string, record Record) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      buildItem(record),
	})
	return err
}

func buildItem(record Record) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"Function":    &types.AttributeValueMemberS{Value: record.Function},
		"Stage":       &types.AttributeValueMemberS{Value: record.Stage},
		"Key":         &types.AttributeValueMemberS{Value: record.Key},
		"Bucket":      &types.AttributeValueMemberS{Value: record.Bucket},
		"SHA256":      &types.AttributeValueMemberS{Value: record.SHA256},
		"Size":        &types.AttributeValueMemberN{Value: strconv.FormatInt(record.Size, 10)},
		"PublishedAt": &types.AttributeValueMemberS{Value: record.PublishedAt.UTC().Format(time.RFC3339)},
	}
}
