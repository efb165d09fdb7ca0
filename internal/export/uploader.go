package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"leadverify/internal/storage"
	"leadverify/internal/verification/domain"
	"leadverify/platform/events"
	"leadverify/platform/logger"
)

// ResultUploader mirrors completed result files to object storage. It is an
// optional subscriber; when MinIO is not configured it is never registered
// and results stay on local disk only.
type ResultUploader struct {
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// NewResultUploader creates the uploader for the given bucket.
func NewResultUploader(storageSvc storage.StorageService, bucket string, log *logger.Logger) *ResultUploader {
	return &ResultUploader{storage: storageSvc, bucket: bucket, log: log}
}

// Register subscribes the uploader to job completion events.
func (u *ResultUploader) Register(bus events.Bus) {
	bus.Subscribe(domain.EventJobCompleted, events.HandlerFunc(u.handleJobCompleted))
}

func (u *ResultUploader) handleJobCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(domain.JobCompleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if completed.ResultsPath == "" {
		return nil
	}

	file, err := os.Open(completed.ResultsPath)
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stating results file: %w", err)
	}

	key, err := u.storage.UploadFile(ctx, u.bucket, completed.JobID,
		filepath.Base(completed.ResultsPath), "text/csv", file, info.Size())
	if err != nil {
		return fmt.Errorf("uploading results file: %w", err)
	}

	u.log.Info("results uploaded", "job_id", completed.JobID, "bucket", u.bucket, "key", key)
	return nil
}
