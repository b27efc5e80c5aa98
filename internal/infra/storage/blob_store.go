// Package storage implements the FileStore interface on top of
// gocloud.dev blob buckets, so local disk and GCS share one code path.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"freshfarm/config"
	"freshfarm/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register bucket URL schemes.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type blobFileStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// StoreParams holds dependencies for FileStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobFileStore opens the configured bucket and returns a FileStore backed by it.
func NewBlobFileStore(params StoreParams) (service.FileStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("Blob file store initialized",
		slog.String("bucket_url", cfg.BucketURL),
	)

	store := &blobFileStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing blob file store")

			return store.Close()
		},
	})

	return store, nil
}

// NewBlobFileStoreFromBucket wraps an already-open bucket. Used by tests.
func NewBlobFileStoreFromBucket(bucket *blob.Bucket, publicBaseURL string, logger *slog.Logger) service.FileStore {
	return &blobFileStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Save writes the content under the given key and returns its public URL.
func (s *blobFileStore) Save(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "open writer for %s", key)
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrapf(err, "write %s", key)
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "close writer for %s", key)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the asset stored under the given key.
func (s *blobFileStore) Delete(ctx context.Context, key string) error {
	return errors.WithStack(s.bucket.Delete(ctx, key))
}

// Close releases the underlying bucket.
func (s *blobFileStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}
