package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avertine/listings-service/internal/models"
	"github.com/avertine/listings-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mmcloughlin/geohash"
)

// listingColumns — единый список колонок таблицы listings,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const listingColumns = `
id, type, name, bedrooms, bathrooms, parking, furnished, offer,
regular_price, discounted_price, location, lat, lng, geohash, img_urls,
user_ref, created_at, updated_at
`

// geohashPrecision — точность геохеша (5 символов ~ 5x5 км),
// достаточная для поиска по окрестности.
const geohashPrecision = 5

// scanListing сканирует одну строку объявления из результата запроса
// в доменную модель с корректными кастами типов (SMALLINT -> models.ListingType,
// nullable discounted_price -> int64).
func scanListing(row pgx.Row) (*models.Listing, error) {
	var listing models.Listing
	var listingType int16
	var discounted *int64

	if err := row.Scan(
		&listing.ID,
		&listingType,
		&listing.Name,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&listing.Parking,
		&listing.Furnished,
		&listing.Offer,
		&listing.RegularPrice,
		&discounted,
		&listing.Location,
		&listing.Geolocation.Lat,
		&listing.Geolocation.Lng,
		&listing.Geohash,
		&listing.ImgURLs,
		&listing.UserRef,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}

	listing.Type = models.ListingType(listingType)

	if discounted != nil {
		listing.DiscountedPrice = *discounted
	}

	return &listing, nil
}

// discountedOrNil — discounted_price хранится как NULL, когда offer выключен.
func discountedOrNil(listing *models.Listing) *int64 {
	if !listing.Offer {
		return nil
	}

	v := listing.DiscountedPrice
	return &v
}

// CreateListing вставляет новую запись объявления.
// Геохеш вычисляется из координат на стороне репозитория.
// Ошибки: storage.ErrAlreadyExists при конфликте первичного ключа, иные — как есть.
func (s *ListingsStorage) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	const op = "storage/postgres/listings/CreateListing"

	q := `
	INSERT INTO listings (id, type, name, bedrooms, bathrooms, parking, furnished, offer,
	                      regular_price, discounted_price, location, lat, lng, geohash, img_urls, user_ref)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING
	` + listingColumns

	row := s.db.QueryRow(ctx, q,
		listing.ID,
		int16(listing.Type),
		listing.Name,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.Parking,
		listing.Furnished,
		listing.Offer,
		listing.RegularPrice,
		discountedOrNil(listing),
		listing.Location,
		listing.Geolocation.Lat,
		listing.Geolocation.Lng,
		pointGeohash(listing.Geolocation),
		listing.ImgURLs,
		listing.UserRef,
	)

	result, err := scanListing(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ListingByID возвращает объявление по идентификатору.
// Ошибки: storage.ErrNotFoundListing, либо ошибка выполнения запроса.
func (s *ListingsStorage) ListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	const op = "storage/postgres/listings/ListingByID"

	q := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	row := s.db.QueryRow(ctx, q, id)

	result, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundListing)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SaveListing полностью перезаписывает документ объявления по id
// и всегда сдвигает updated_at = now(). Один UPDATE — перезапись атомарна
// в пределах идентификатора.
// Ошибки: storage.ErrNotFoundListing при отсутствии записи.
func (s *ListingsStorage) SaveListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	const op = "storage/postgres/listings/SaveListing"

	q := `
	UPDATE listings
	SET type = $2, name = $3, bedrooms = $4, bathrooms = $5, parking = $6,
	    furnished = $7, offer = $8, regular_price = $9, discounted_price = $10,
	    location = $11, lat = $12, lng = $13, geohash = $14, img_urls = $15,
	    updated_at = now()
	WHERE id = $1
	RETURNING
	` + listingColumns

	row := s.db.QueryRow(ctx, q,
		listing.ID,
		int16(listing.Type),
		listing.Name,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.Parking,
		listing.Furnished,
		listing.Offer,
		listing.RegularPrice,
		discountedOrNil(listing),
		listing.Location,
		listing.Geolocation.Lat,
		listing.Geolocation.Lng,
		pointGeohash(listing.Geolocation),
		listing.ImgURLs,
	)

	result, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundListing)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ListingsByOwner возвращает объявления владельца, новые первыми.
// Пустой результат — не ошибка.
func (s *ListingsStorage) ListingsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Listing, error) {
	const op = "storage/postgres/listings/ListingsByOwner"

	q := `SELECT ` + listingColumns + ` FROM listings WHERE user_ref = $1 ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		result = append(result, *listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// DeleteListing удаляет объявление по идентификатору.
// Ошибки: storage.ErrNotFoundListing, если записи не было.
func (s *ListingsStorage) DeleteListing(ctx context.Context, id uuid.UUID) error {
	const op = "storage/postgres/listings/DeleteListing"

	tag, err := s.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundListing)
	}

	return nil
}

// pointGeohash — геохеш координаты с фиксированной точностью.
func pointGeohash(p models.GeoPoint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, geohashPrecision)
}
