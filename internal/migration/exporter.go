package migration

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// ObjectStoreExporter uploads backup snapshots to an S3-compatible object
// store so rollback data survives a database loss.
type ObjectStoreExporter struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

// NewObjectStoreExporter creates an exporter from backup settings. Returns
// (nil, nil) when exports are disabled.
func NewObjectStoreExporter(cfg *config.BackupConfig, log logger.Logger) (*ObjectStoreExporter, error) {
	if !cfg.Enabled {
		log.LogInfo("Backup snapshot export is disabled", nil)
		return nil, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client: %v", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check backup bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create backup bucket: %v", err)
		}
	}

	log.LogInfo("Backup snapshot export initialized", map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"bucket":   cfg.Bucket,
	})
	return &ObjectStoreExporter{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

// Export uploads the serialized snapshot and returns its object location
func (e *ObjectStoreExporter) Export(ctx context.Context, backupID uuid.UUID, payload []byte) (string, error) {
	key := fmt.Sprintf("backups/%s.json", backupID)

	_, err := e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup snapshot: %v", err)
	}

	e.logger.LogDebug("Backup snapshot exported", map[string]interface{}{
		"bucket": e.bucket,
		"key":    key,
		"bytes":  len(payload),
	})
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
