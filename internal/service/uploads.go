package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/avertine/listings-service/internal/models"
	"github.com/avertine/listings-service/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UploadState — переходное состояние одной загрузки. PutObject в MinIO —
// блокирующая передача без resumable-handle, поэтому наблюдаемое состояние
// одно: running от первого байта до завершения.
type UploadState int8

const (
	UploadStateRunning UploadState = iota + 1
)

func (s UploadState) String() string {
	switch s {
	case UploadStateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// UploadProgress — событие прогресса одной загрузки.
// Index — позиция изображения во входной последовательности черновика.
// Побочный канал для UI, не часть функционального контракта конвейера.
type UploadProgress struct {
	Index            int
	Key              string
	BytesTransferred int64
	TotalBytes       int64
	State            UploadState
}

// UploadProgressFunc — наблюдатель прогресса; может быть nil.
// Вызывается из горутин загрузок, реализация должна быть потокобезопасной.
type UploadProgressFunc func(UploadProgress)

// uploadAll загружает все изображения черновика конкурентно.
//
// Гарантии:
//   - результат сохраняет порядок входной последовательности независимо
//     от порядка завершения отдельных загрузок;
//   - all-or-nothing: первая же ошибка отменяет контекст остальных
//     загрузок и проваливает batch целиком, частичный результат не
//     возвращается (уже записанные объекты не удаляются);
//   - отмена ctx вызывающим прерывает все незавершённые загрузки.
//
// Каждая задача владеет собственным payload'ом и пишет в непересекающийся
// ключ, поэтому блокировки не нужны: urls[i] пишется ровно одной горутиной.
func (s *Service) uploadAll(ctx context.Context, owner uuid.UUID, images []models.ImageUpload, onProgress UploadProgressFunc) ([]string, error) {
	const op = "service/listings/uploadAll"

	urls := make([]string, len(images))

	g, gctx := errgroup.WithContext(ctx)

	for i := range images {
		i := i
		img := images[i]
		key := imageKey(owner, img.Filename)

		g.Go(func() error {
			var progress storage.ProgressFunc
			if onProgress != nil {
				progress = func(transferred, total int64) {
					onProgress(UploadProgress{
						Index:            i,
						Key:              key,
						BytesTransferred: transferred,
						TotalBytes:       total,
						State:            UploadStateRunning,
					})
				}
			}

			url, err := s.imagesStorage.StoreImage(gctx, key, img.ContentType, bytes.NewReader(img.Body), int64(len(img.Body)), progress)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", op, key, err)
			}

			urls[i] = url

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}

// imageKey — глобально уникальный ключ объекта: владелец, исходное имя
// файла и свежий случайный идентификатор. Исключает коллизии между
// пользователями и между повторными отправками одного файла.
func imageKey(owner uuid.UUID, filename string) string {
	name := path.Base(strings.TrimSpace(filename))

	return fmt.Sprintf("images/%s-%s-%s", owner, name, uuid.NewString())
}
