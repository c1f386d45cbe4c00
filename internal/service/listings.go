package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avertine/listings-service/internal/events"
	"github.com/avertine/listings-service/internal/models"
	"github.com/avertine/listings-service/internal/pkg/log"
	"github.com/avertine/listings-service/internal/storage"
	"github.com/google/uuid"
)

// SubmitListingInput — черновик объявления на входе конвейера подачи.
//
// Latitude/Longitude — сырые строки из формы; используются только при
// выключенном геокодинге и разбираются на шаге разрешения локации.
// OwnerID берётся из активной сессии и не редактируется пользователем.
// Progress — необязательный наблюдатель прогресса загрузок (для UI).
type SubmitListingInput struct {
	Type            models.ListingType
	Name            string
	Bedrooms        int32
	Bathrooms       int32
	Parking         bool
	Furnished       bool
	Offer           bool
	Address         string
	Latitude        string
	Longitude       string
	RegularPrice    int64
	DiscountedPrice int64
	Images          []models.ImageUpload
	OwnerID         uuid.UUID
	Progress        UploadProgressFunc
}

// CreateListing проводит черновик через конвейер подачи и создаёт
// новое объявление.
//
// Этапы строго последовательны, каждый проваливается fail-fast:
//  1. валидация бизнес-инвариантов (ни одна загрузка не стартует раньше);
//  2. разрешение локации (один запрос к геокодеру либо ручные координаты);
//  3. конкурентная загрузка всех изображений (all-or-nothing);
//  4. сборка канонического документа;
//  5. запись в репозиторий (timestamp назначает сервер БД).
//
// Частичный документ никогда не записывается. Событие listing.created
// публикуется best-effort после успешной записи.
func (s *Service) CreateListing(ctx context.Context, input SubmitListingInput) (*models.Listing, error) {
	const op = "service/listings/CreateListing"

	lg := log.From(ctx).With("op", op, "owner", input.OwnerID.String())

	if err := validateDraft(input, s.cfg.Geocode.Enabled); err != nil {
		lg.Warn("draft validation failed", "err", err)

		return nil, err
	}

	resolved, err := s.resolveLocation(ctx, input)
	if err != nil {
		return nil, err
	}

	imgURLs, err := s.uploadAll(ctx, input.OwnerID, input.Images, input.Progress)
	if err != nil {
		return nil, s.mapUploadError(ctx, err)
	}

	listing := assembleListing(uuid.New(), input, resolved, imgURLs)

	result, err := s.listingsStorage.CreateListing(ctx, listing)
	if err != nil {
		lg.Error("storage error on CreateListing", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.publishEvent(ctx, events.ActionCreated, result)

	return result, nil
}

// UpdateListing перезаписывает существующее объявление результатом
// конвейера подачи.
//
// Проверка владения выполняется до любой логики мутации: объявление
// загружается по id, отсутствие — ErrNotFound, чужой UserRef —
// ErrPermissionDenied. Дальше — тот же конвейер, что и при создании;
// запись является полной перезаписью документа, не patch'ем.
func (s *Service) UpdateListing(ctx context.Context, listingID uuid.UUID, input SubmitListingInput) (*models.Listing, error) {
	const op = "service/listings/UpdateListing"

	lg := log.From(ctx).With("op", op, "listing_id", listingID.String(), "owner", input.OwnerID.String())

	if listingID == uuid.Nil {
		lg.Warn("invalid argument: empty listing_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	existing, err := s.authorizeOwner(ctx, listingID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := validateDraft(input, s.cfg.Geocode.Enabled); err != nil {
		lg.Warn("draft validation failed", "err", err)

		return nil, err
	}

	resolved, err := s.resolveLocation(ctx, input)
	if err != nil {
		return nil, err
	}

	imgURLs, err := s.uploadAll(ctx, input.OwnerID, input.Images, input.Progress)
	if err != nil {
		return nil, s.mapUploadError(ctx, err)
	}

	listing := assembleListing(existing.ID, input, resolved, imgURLs)

	result, err := s.listingsStorage.SaveListing(ctx, listing)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundListing):
			lg.Warn("listing disappeared before save")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on SaveListing", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	s.publishEvent(ctx, events.ActionUpdated, result)

	return result, nil
}

// ListingByID возвращает объявление по идентификатору.
func (s *Service) ListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	const op = "service/listings/ListingByID"

	lg := log.From(ctx).With("op", op, "listing_id", id.String())

	if id == uuid.Nil {
		lg.Warn("invalid argument: empty listing_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.listingsStorage.ListingByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundListing):
			lg.Warn("listing not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ListingByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// ListingsByOwner возвращает объявления владельца, новые первыми.
func (s *Service) ListingsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Listing, error) {
	const op = "service/listings/ListingsByOwner"

	lg := log.From(ctx).With("op", op, "owner", owner.String())

	if owner == uuid.Nil {
		lg.Warn("invalid argument: empty owner")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.listingsStorage.ListingsByOwner(ctx, owner)
	if err != nil {
		lg.Error("storage error on ListingsByOwner", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// DeleteListing удаляет объявление после проверки владения.
func (s *Service) DeleteListing(ctx context.Context, id, actor uuid.UUID) error {
	const op = "service/listings/DeleteListing"

	lg := log.From(ctx).With("op", op, "listing_id", id.String(), "actor", actor.String())

	if id == uuid.Nil || actor == uuid.Nil {
		lg.Warn("invalid argument")

		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	existing, err := s.authorizeOwner(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := s.listingsStorage.DeleteListing(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundListing):
			lg.Warn("listing disappeared before delete")

			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteListing", "err", err)

			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	s.publishEvent(ctx, events.ActionDeleted, existing)

	return nil
}

// authorizeOwner загружает объявление и сверяет владельца с действующей
// идентичностью. Вызывается до любой мутации.
func (s *Service) authorizeOwner(ctx context.Context, listingID, actor uuid.UUID) (*models.Listing, error) {
	const op = "service/listings/authorizeOwner"

	lg := log.From(ctx).With("op", op, "listing_id", listingID.String(), "actor", actor.String())

	existing, err := s.listingsStorage.ListingByID(ctx, listingID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundListing):
			lg.Warn("listing not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ListingByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if existing.UserRef != actor {
		lg.Warn("actor is not the owner", "user_ref", existing.UserRef.String())

		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	return existing, nil
}

// mapUploadError маппит ошибку batch'а загрузок в ошибку сервиса:
// нарушения ограничений payload'а — ErrInvalidArgument, прочее — ErrUploadFailed.
func (s *Service) mapUploadError(ctx context.Context, err error) error {
	const op = "service/listings/uploadAll"

	lg := log.From(ctx).With("op", op)

	if errors.Is(err, storage.ErrInvalidImage) {
		lg.Warn("image rejected by storage", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	lg.Error("image batch upload failed", "err", err)

	return fmt.Errorf("%s: %w", op, ErrUploadFailed)
}

// publishEvent — best-effort публикация доменного события:
// сбой публикации логируется и не проваливает операцию.
func (s *Service) publishEvent(ctx context.Context, action string, listing *models.Listing) {
	if s.events == nil {
		return
	}

	event := events.Event{
		Action:     action,
		ListingID:  listing.ID,
		UserRef:    listing.UserRef,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.events.Publish(ctx, event); err != nil {
		log.From(ctx).Warn("event publish failed", "action", action, "err", err)
	}
}
