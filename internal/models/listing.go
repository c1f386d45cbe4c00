// models содержит доменные сущности listings-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ListingType — внутренний enum типа объявления (продажа/аренда).
type ListingType int8

const (
	TypeUnspecified ListingType = iota
	TypeSale
	TypeRent
)

func (t ListingType) String() string {
	switch t {
	case TypeSale:
		return "sale"
	case TypeRent:
		return "rent"
	default:
		return "unspecified"
	}
}

// ParseListingType разбирает строковое представление типа ("sale"/"rent").
func ParseListingType(value string) (ListingType, error) {
	switch value {
	case "sale":
		return TypeSale, nil
	case "rent":
		return TypeRent, nil
	default:
		return TypeUnspecified, fmt.Errorf("unknown listing type %q", value)
	}
}

// GeoPoint — географическая координата объявления.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// ImageUpload — одно вложение черновика: сырой бинарный payload
// c исходным именем файла и типом содержимого.
// Payload полностью принадлежит одной задаче загрузки.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Listing — внутренняя доменная модель сохранённого объявления.
//
// DiscountedPrice значимо только при Offer == true; при Offer == false
// хранилище и транспорт трактуют его как отсутствующее.
// CreatedAt/UpdatedAt назначаются сервером при записи.
type Listing struct {
	ID              uuid.UUID
	Type            ListingType
	Name            string
	Bedrooms        int32
	Bathrooms       int32
	Parking         bool
	Furnished       bool
	Offer           bool
	RegularPrice    int64
	DiscountedPrice int64
	Location        string
	Geolocation     GeoPoint
	Geohash         string
	ImgURLs         []string
	UserRef         uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
