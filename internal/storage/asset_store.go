package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Asset is an uploaded file: URL is what clients load, ID is what Delete takes.
type Asset struct {
	URL string
	ID  string
}

// AssetStore keeps book covers and PDFs.
type AssetStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Asset, error)
	Delete(ctx context.Context, id string) error
}

// MinioStore implements AssetStore for MinIO/S3 compatible storage.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to MinIO and ensures the bucket exists. publicURL is the
// base used for object links; when empty the endpoint itself is used.
func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, publicURL string) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}
	return &MinioStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Upload puts an object and returns its public link; the object key doubles as the asset id.
func (m *MinioStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Asset, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Asset{}, fmt.Errorf("put object: %w", err)
	}
	return Asset{URL: m.objectURL(key), ID: key}, nil
}

// Delete removes an object.
func (m *MinioStore) Delete(ctx context.Context, id string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (m *MinioStore) objectURL(key string) string {
	return JoinURL(m.publicURL, m.bucket, key)
}

// JoinURL builds base/bucket/key escaping each key segment.
func JoinURL(base, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), url.PathEscape(bucket), strings.Join(segments, "/"))
}
