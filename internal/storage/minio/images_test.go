package minio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/avertine/listings-service/internal/config"
	"github.com/avertine/listings-service/internal/storage"
)

// Интеграционные тесты для пакета minio:
// — поднимают реальный MinIO через testcontainers-go;
// — создают бакет для изображений объявлений;
// — проверяют:
//    New: успешное подключение и ошибку при отсутствии бакета;
//    StoreImage: запись объекта, сборку публичного URL, отчёт о прогрессе,
//    валидации по типу/размеру (ErrInvalidImage).
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/minio -v -race -count=1

func startMinio(t *testing.T, createBucket bool) (*ImagesStorage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	const (
		image        = "docker.io/minio/minio:latest"
		rootUser     = "root"
		rootPassword = "rootpass"
		bucket       = "listings"
	)
	req := tc.ContainerRequest{
		Image: image,
		Env: map[string]string{
			"MINIO_ROOT_USER":     rootUser,
			"MINIO_ROOT_PASSWORD": rootPassword,
		},
		Cmd:          []string{"server", "/data", "--console-address", ":9001"},
		ExposedPorts: []string{"9000/tcp", "9001/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting minio container with image=%q", image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "9000/tcp")
	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())

	if createBucket {
		admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
			Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
			Secure: false,
		})
		require.NoError(t, err)
		err = admin.MakeBucket(ctx, bucket, mclient.MakeBucketOptions{Region: "us-east-1"})
		require.NoError(t, err)
	}

	cfg := &config.Config{
		S3: config.S3Config{
			Endpoint:      endpoint,
			RootUser:      rootUser,
			RootPassword:  rootPassword,
			Bucket:        bucket,
			PublicBaseURL: "http://cdn.local/listings/",
		},
		Images: config.ImagesConfig{
			MaxSizeBytes:        1 << 20, // 1 MiB
			AllowedContentTypes: []string{"image/png", "image/jpeg", "image/webp"},
		},
	}

	st, newErr := New(ctx, cfg)
	if !createBucket {
		require.Error(t, newErr)
		_ = c.Terminate(context.Background())
		return nil, func() {}
	}
	require.NoError(t, newErr)

	cleanup := func() {
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func TestIntegration_New_BucketMustExist(t *testing.T) {
	// Без предварительного создания бакета New должен вернуть ошибку.
	_, _ = startMinio(t, false)
}

func TestIntegration_StoreImage_OK(t *testing.T) {
	st, cleanup := startMinio(t, true)
	defer cleanup()

	body := []byte("png-payload")
	key := fmt.Sprintf("images/%s-front.png-%s", uuid.New(), uuid.New())

	var mu sync.Mutex
	var transfers []int64

	url, err := st.StoreImage(context.Background(), key, "image/png",
		bytes.NewReader(body), int64(len(body)),
		func(transferred, total int64) {
			mu.Lock()
			defer mu.Unlock()
			transfers = append(transfers, transferred)
			require.EqualValues(t, len(body), total)
		})
	require.NoError(t, err)

	// Публичный URL: PublicBaseURL без хвостового слэша + "/" + key.
	require.Equal(t, "http://cdn.local/listings/"+key, url)

	mu.Lock()
	require.NotEmpty(t, transfers)
	require.EqualValues(t, len(body), transfers[len(transfers)-1])
	mu.Unlock()

	// Объект действительно записан с нужным типом содержимого.
	info, err := st.client.StatObject(context.Background(), st.cfg.S3.Bucket, key, mclient.StatObjectOptions{})
	require.NoError(t, err)
	require.EqualValues(t, len(body), info.Size)
	require.Equal(t, "image/png", info.ContentType)
}

func TestIntegration_StoreImage_NilProgress(t *testing.T) {
	st, cleanup := startMinio(t, true)
	defer cleanup()

	body := []byte("jpeg-payload")
	url, err := st.StoreImage(context.Background(), "images/no-progress", "image/jpeg",
		bytes.NewReader(body), int64(len(body)), nil)
	require.NoError(t, err)
	require.NotEmpty(t, url)
}

func TestIntegration_StoreImage_Validation(t *testing.T) {
	st, cleanup := startMinio(t, true)
	defer cleanup()

	body := []byte("payload")

	// Недопустимый тип содержимого.
	_, err := st.StoreImage(context.Background(), "images/bad-type", "application/pdf",
		bytes.NewReader(body), int64(len(body)), nil)
	require.ErrorIs(t, err, storage.ErrInvalidImage)

	// Нулевой размер.
	_, err = st.StoreImage(context.Background(), "images/empty", "image/png",
		bytes.NewReader(nil), 0, nil)
	require.ErrorIs(t, err, storage.ErrInvalidImage)

	// Превышение лимита.
	_, err = st.StoreImage(context.Background(), "images/too-big", "image/png",
		bytes.NewReader(body), st.cfg.Images.MaxSizeBytes+1, nil)
	require.ErrorIs(t, err, storage.ErrInvalidImage)
}
