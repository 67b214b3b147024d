// Where: cli/internal/publish/publish.go
// What: Artifact upload and ledger recording.
// Why: Make built archives available to emulators that read from an S3-compatible store.
package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/poruru/sls-dart/cli/internal/meta"
)

const archiveContentType = "application/zip"

var (
	errBucketRequired = errors.New("publish bucket is required")
	errTableRequired  = errors.New("ledger table is required")
	errClientNil      = errors.New("client is nil")
)

// Artifact is a built archive ready for upload.
type Artifact struct {
	Function string
	Path     string
}

// Record describes one uploaded archive.
type Record struct {
	Function    string
	Stage       string
	Bucket      string
	Key         string
	SHA256      string
	Size        int64
	PublishedAt time.Time
}

// Uploader puts archives at <prefix>/<stage>/<function>.zip.
type Uploader struct {
	Client S3API
	Bucket string
	Prefix string
	Stage  string
	Now    func() time.Time
}

// Key returns the object key of function's archive.
func (u Uploader) Key(function string) string {
	return path.Join(strings.Trim(u.Prefix, "/"), u.Stage, function+meta.ArchiveExt)
}

// Upload stores every artifact in order and stops at the first failure.
func (u Uploader) Upload(ctx context.Context, artifacts []Artifact) ([]Record, error) {
	if u.Client == nil {
		return nil, fmt.Errorf("s3: %w", errClientNil)
	}
	if strings.TrimSpace(u.Bucket) == "" {
		return nil, errBucketRequired
	}
	now := u.Now
	if now == nil {
		now = time.Now
	}

	records := make([]Record, 0, len(artifacts))
	for _, artifact := range artifacts {
		payload, err := os.ReadFile(artifact.Path)
		if err != nil {
			return records, fmt.Errorf("read artifact for %s: %w", artifact.Function, err)
		}
		sum := sha256.Sum256(payload)
		digest := hex.EncodeToString(sum[:])
		key := u.Key(artifact.Function)

		if err := u.Client.PutObject(ctx, PutObjectInput{
			Bucket:      u.Bucket,
			Key:         key,
			Body:        payload,
			ContentType: archiveContentType,
			Metadata:    map[string]string{"sha256": digest, "function": artifact.Function},
		}); err != nil {
			return records, fmt.Errorf("upload %s to s3://%s/%s: %w", artifact.Function, u.Bucket, key, err)
		}
		records = append(records, Record{
			Function:    artifact.Function,
			Stage:       u.Stage,
			Bucket:      u.Bucket,
			Key:         key,
			SHA256:      digest,
			Size:        int64(len(payload)),
			PublishedAt: now(),
		})
	}
	return records, nil
}

// Ledger writes one item per uploaded archive.
type Ledger struct {
	Client DynamoDBAPI
	Table  string
}

func (l Ledger) Record(ctx context.Context, records []Record) error {
	if l.Client == nil {
		return fmt.Errorf("dynamodb: %w", errClientNil)
	}
	if strings.TrimSpace(l.Table) == "" {
		return errTableRequired
	}
	for _, record := range records {
		if err := l.Client.PutItem(ctx, l.Table, record); err != nil {
			return fmt.Errorf("record %s in %s: %w", record.Function, l.Table, err)
		}
	}
	return nil
}
