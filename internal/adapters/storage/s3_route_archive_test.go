package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"maintenance-route-service/internal/ports"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	opts        minio.PutObjectOptions
	err         error
}

func (f *fakePutter) PutObject(
	ctx context.Context,
	bucketName, objectName string,
	reader io.Reader,
	objectSize int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.bucket, f.key, f.body, f.opts = bucketName, objectName, b, opts
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func testRoute() *ports.MaintenanceRoute {
	return &ports.MaintenanceRoute{
		RouteID:    "6f1c2a7e",
		ComputedAt: time.Date(2026, 3, 1, 23, 30, 0, 0, time.FixedZone("EAT", 3*60*60)),
	}
}

func TestObjectKey(t *testing.T) {
	require.Equal(t, "routes/2026/03/01/6f1c2a7e.json", ObjectKey(testRoute()))

	r := testRoute()
	r.RouteID = "../etc/passwd"
	require.Equal(t, "routes/2026/03/01/__etc_passwd.json", ObjectKey(r))
}

func TestS3RouteArchiveStore(t *testing.T) {
	putter := &fakePutter{}
	archive := &S3RouteArchive{client: putter, bucket: "maintenance-routes"}

	key, err := archive.Store(context.Background(), testRoute())
	require.NoError(t, err)
	require.Equal(t, "routes/2026/03/01/6f1c2a7e.json", key)
	require.Equal(t, "maintenance-routes", putter.bucket)
	require.Equal(t, "application/json", putter.opts.ContentType)

	var stored ports.MaintenanceRoute
	require.NoError(t, json.Unmarshal(putter.body, &stored))
	require.Equal(t, "6f1c2a7e", stored.RouteID)
}

func TestS3RouteArchiveStoreErrors(t *testing.T) {
	archive := &S3RouteArchive{client: &fakePutter{err: errors.New("access denied")}, bucket: "b"}

	_, err := archive.Store(context.Background(), testRoute())
	require.ErrorContains(t, err, "access denied")

	_, err = archive.Store(context.Background(), nil)
	require.Error(t, err)

	_, err = archive.Store(context.Background(), &ports.MaintenanceRoute{})
	require.Error(t, err)
}
