// service содержит бизнес-логику listings-сервиса:
// - конвейер подачи объявления (валидация черновика, разрешение адреса,
//   конкурентная загрузка изображений, сборка документа, запись);
// - проверка владения при редактировании/удалении;
// - чтение объявлений (по id и по владельцу).
package service

import (
	"errors"

	"github.com/avertine/listings-service/internal/config"
	"github.com/avertine/listings-service/internal/events"
	"github.com/avertine/listings-service/internal/geocode"
	"github.com/avertine/listings-service/internal/storage"
)

var (
	// ErrInvalidArgument — черновик нарушает бизнес-инварианты (валидация).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidAddress — адрес не разрешается в координаты
	// (ZERO_RESULTS геокодера либо непригодные ручные координаты).
	ErrInvalidAddress = errors.New("invalid address")
	// ErrUploadFailed — хотя бы одна загрузка изображения не удалась;
	// batch целиком считается проваленным.
	ErrUploadFailed = errors.New("upload failed")
	// ErrNotFound — объявление не найдено.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied — действующая идентичность не владеет объявлением.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// Service — описывает бизнес-логику listings-service.
type Service struct {
	cfg             *config.Config
	listingsStorage storage.ListingsStorage
	imagesStorage   storage.ImagesStorage
	geocoder        geocode.Geocoder
	events          events.Events
}

// New создает новый экземпляр Service.
// events может быть nil — тогда доменные события не публикуются.
func New(listingsStorage storage.ListingsStorage, imagesStorage storage.ImagesStorage, geocoder geocode.Geocoder, ev events.Events, cfg *config.Config) *Service {
	return &Service{
		cfg:             cfg,
		listingsStorage: listingsStorage,
		imagesStorage:   imagesStorage,
		geocoder:        geocoder,
		events:          ev,
	}
}
