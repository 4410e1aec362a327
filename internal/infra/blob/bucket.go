// Package blob implements the domain BlobStore on top of gocloud.dev buckets,
// so local disk (file://) and S3 (s3://) storage share one code path.
package blob

import (
	"context"
	"io"
	"log/slog"
	"time"

	"medcare/config"
	"medcare/internal/domain/lifecycle"
	"medcare/internal/domain/service"
	"medcare/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the bucket URL schemes used by deployments.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultSignedURLTTL = 15 * time.Minute

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// bucketStore implements service.BlobStore backed by a gocloud bucket.
type bucketStore struct {
	bucket       *blob.Bucket
	signedURLTTL time.Duration
}

// New opens the configured bucket and registers its shutdown hook.
func New(params Params) (service.BlobStore, error) {
	if params.Config.Blob == nil || params.Config.Blob.BucketURL == "" {
		return nil, errors.New("blob bucket URL is required")
	}

	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Blob.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob bucket")
	}

	signedURLTTL := params.Config.Blob.SignedURLTTL
	if signedURLTTL <= 0 {
		signedURLTTL = defaultSignedURLTTL
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &bucketStore{
		bucket:       bucket,
		signedURLTTL: signedURLTTL,
	}, nil
}

// Put streams content into the bucket under the given key.
func (s *bucketStore) Put(ctx context.Context, key string, content io.Reader, contentType string) error {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Closing after a failed copy aborts the upload.
		_ = writer.Close()

		return errors.Wrap(err, "failed to write blob")
	}

	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to commit blob")
	}

	return nil
}

// SignedURL returns a time-limited download URL for the given key. A
// non-positive ttl falls back to the configured default.
func (s *bucketStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.signedURLTTL
	}

	url, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: ttl})
	if err != nil {
		return "", errors.Wrap(err, "failed to sign blob URL")
	}

	return url, nil
}
