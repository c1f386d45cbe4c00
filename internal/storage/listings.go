// storage содержит контракты слоя хранилищ listings-service.
//
// listings.go - работа с объявлениями в БД: создание, чтение, полная
// перезапись документа, выборка по владельцу и удаление.
// images.go - контракт для загрузки изображений объявления в S3/MinIO.
package storage

import (
	"context"
	"errors"

	"github.com/avertine/listings-service/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFoundListing — объявление не найдено.
	ErrNotFoundListing = errors.New("not found")
	// ErrAlreadyExists — объявление с тем же идентификатором уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// Listings — контракт репозитория объявлений.
//
// SaveListing — полная перезапись документа по его идентификатору,
// не частичный patch: реализация заменяет все поля и сдвигает updated_at.
// Перезапись атомарна в пределах одного id (один UPDATE), last-writer-wins.
type Listings interface {
	// CreateListing вставляет новое объявление. Идентификатор назначает вызывающий.
	CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	// ListingByID возвращает объявление по идентификатору.
	ListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// SaveListing полностью перезаписывает существующее объявление.
	SaveListing(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	// ListingsByOwner возвращает объявления владельца, новые первыми.
	ListingsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Listing, error)
	// DeleteListing удаляет объявление по идентификатору.
	DeleteListing(ctx context.Context, id uuid.UUID) error
}

// ListingsStorage — верхнеуровневый интерфейс хранилища объявлений.
type ListingsStorage interface {
	Listings
	Close()
}
