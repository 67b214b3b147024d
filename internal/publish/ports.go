// Where: cli/internal/publish/ports.go
// What: Storage ports used by the publisher.
// Why: Keep upload and ledger logic independent of the AWS SDK.
package publish

import "context"

// S3API stores objects in a bucket.
type S3API interface {
	PutObject(ctx context.Context, input PutObjectInput) error
}

// DynamoDBAPI writes ledger items.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, table string, record Record) error
}

type PutObjectInput struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}
