package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maintenance-route-service/internal/platform/obs"
	"maintenance-route-service/internal/ports"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectPutter is the subset of *minio.Client the archive needs.
type objectPutter interface {
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// S3RouteArchive stores computed routes as JSON objects in an
// S3-compatible bucket.
type S3RouteArchive struct {
	client objectPutter
	bucket string
}

// NewS3RouteArchive connects to the MinIO endpoint and makes sure the
// bucket exists.
func NewS3RouteArchive(
	ctx context.Context,
	endpoint, accessKey, secretKey string,
	useSSL bool,
	bucket string,
) (*S3RouteArchive, error) {
	if endpoint == "" || bucket == "" {
		return nil, errors.New("route archive: endpoint and bucket are required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("route archive: create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("route archive: check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("route archive: create bucket %q: %w", bucket, err)
		}
	}

	return &S3RouteArchive{client: client, bucket: bucket}, nil
}

// ObjectKey returns routes/YYYY/MM/DD/<route id>.json for the route's
// computation date.
func ObjectKey(route *ports.MaintenanceRoute) string {
	return path.Join(
		"routes",
		route.ComputedAt.UTC().Format("2006/01/02"),
		sanitizeKey(route.RouteID)+".json",
	)
}

func (s *S3RouteArchive) Store(ctx context.Context, route *ports.MaintenanceRoute) (_ string, err error) {
	defer obs.Time(ctx, "route.archive.Store")(&err)

	if route == nil {
		return "", errors.New("store route: route is nil")
	}
	if strings.TrimSpace(route.RouteID) == "" {
		return "", errors.New("store route: route_id must not be empty")
	}

	data, err := json.Marshal(route)
	if err != nil {
		return "", fmt.Errorf("store route: marshal route_id=%s: %w", route.RouteID, err)
	}

	key := ObjectKey(route)
	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("store route: put %s/%s: %w", s.bucket, key, err)
	}

	return key, nil
}

func sanitizeKey(s string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_", "..", "_")
	return r.Replace(strings.TrimSpace(s))
}
