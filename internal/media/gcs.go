package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// GCSStore writes media objects to a Cloud Storage bucket.
type GCSStore struct {
	bucket     *storage.BucketHandle
	bucketName string
	public     bool
	logger     *zap.Logger
}

func NewGCSStore(client *storage.Client, bucket string, public bool, logger *zap.Logger) *GCSStore {
	return &GCSStore{
		bucket:     client.Bucket(bucket),
		bucketName: bucket,
		public:     public,
		logger:     logger.Named("gcs"),
	}
}

// Save writes the object only if it does not already exist. An existing
// object with the same name is treated as already saved.
func (s *GCSStore) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	writer := s.bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			s.logger.Info("object already exists, skipping", zap.String("object", name))
			return s.url(name), nil
		}
		return "", fmt.Errorf("failed to finalize GCS write: %w", err)
	}

	s.logger.Debug("saved object", zap.String("object", name), zap.Int("bytes", len(data)))
	return s.url(name), nil
}

func (s *GCSStore) url(name string) string {
	if s.public {
		return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, name)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucketName, name)
}
