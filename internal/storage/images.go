package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrInvalidImage — нарушены ограничения payload'а (тип/размер).
	ErrInvalidImage = errors.New("invalid image")
)

// ProgressFunc — наблюдатель прогресса одной загрузки.
// Вызывается по мере передачи байтов; не является частью функционального
// контракта и может быть nil.
type ProgressFunc func(bytesTransferred, totalBytes int64)

// Images — контракт бинарного хранилища изображений.
type Images interface {
	// StoreImage записывает payload под заданным ключом и возвращает
	// постоянный публичный URL объекта. Ключи диспетчер загрузок делает
	// глобально уникальными, поэтому перезаписи по ключу не бывает.
	StoreImage(ctx context.Context, key, contentType string, payload io.Reader, size int64, onProgress ProgressFunc) (string, error)
}

// ImagesStorage — алиас-обёртка для внедрения зависимости.
type ImagesStorage interface {
	Images
}
