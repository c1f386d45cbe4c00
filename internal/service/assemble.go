package service

import (
	"github.com/avertine/listings-service/internal/geocode"
	"github.com/avertine/listings-service/internal/models"
	"github.com/google/uuid"
)

// assembleListing собирает канонический документ объявления из черновика,
// разрешённой локации и ссылок на загруженные изображения.
//
// Чистая и детерминированная функция без пути отказа: к моменту сборки
// все входы уже валидны по отдельности. Транзиентные поля черновика
// (payload'ы изображений, свободный адрес, ручные координаты) в документ
// не попадают; DiscountedPrice переносится только при включённом Offer.
// Серверные поля (CreatedAt/UpdatedAt) назначает репозиторий при записи.
func assembleListing(id uuid.UUID, in SubmitListingInput, resolved *geocode.Result, imgURLs []string) *models.Listing {
	listing := &models.Listing{
		ID:           id,
		Type:         in.Type,
		Name:         in.Name,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Parking:      in.Parking,
		Furnished:    in.Furnished,
		Offer:        in.Offer,
		RegularPrice: in.RegularPrice,
		Location:     resolved.Location,
		Geolocation:  models.GeoPoint{Lat: resolved.Lat, Lng: resolved.Lng},
		ImgURLs:      imgURLs,
		UserRef:      in.OwnerID,
	}

	if in.Offer {
		listing.DiscountedPrice = in.DiscountedPrice
	}

	return listing
}
