package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/avertine/listings-service/internal/storage"
	mclient "github.com/minio/minio-go/v7"
)

// StoreImage записывает payload изображения под ключом key и возвращает
// постоянный публичный URL объекта (PublicBaseURL + key).
// Валидирует contentType и size согласно конфигу. Прогресс передачи
// сообщается через onProgress по мере вычитывания payload'а.
func (s *ImagesStorage) StoreImage(ctx context.Context, key, contentType string, payload io.Reader, size int64, onProgress storage.ProgressFunc) (string, error) {
	const op = "storage/minio/images/StoreImage"

	if size <= 0 || size > s.cfg.Images.MaxSizeBytes {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidImage)
	}

	if !isAllowedContentType(s.cfg.Images.AllowedContentTypes, contentType) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidImage)
	}

	reader := payload
	if onProgress != nil {
		reader = &progressReader{r: payload, total: size, fn: onProgress}
	}

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, reader, size, mclient.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")

	return base + "/" + key, nil
}

// progressReader оборачивает payload и сообщает наблюдателю
// накопленное число переданных байтов после каждого чтения.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    storage.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.read, p.total)
	}

	return n, err
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
