package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/avertine/listings-service/internal/models"
	"github.com/google/uuid"
)

// Бизнес-ограничения черновика.
const (
	maxImages   = 6
	minRooms    = 1
	maxRooms    = 50
	minPrice    = 50
	maxPrice    = 750_000_000
	minNameLen  = 10
	maxNameLen  = 32
)

// validateDraft проверяет бизнес-инварианты черновика.
// Правила применяются по порядку, побеждает первое нарушение.
// Чистая функция: никаких побочных эффектов, ни одна загрузка
// не стартует до успешной валидации.
func validateDraft(in SubmitListingInput, geocodeEnabled bool) error {
	const op = "service/listings/validateDraft"

	fail := func(msg string) error {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument, msg)
	}

	if in.Offer && in.DiscountedPrice >= in.RegularPrice {
		return fail("discounted price must be less than regular price")
	}

	if len(in.Images) > maxImages {
		return fail("maximum six images")
	}

	if len(in.Images) == 0 {
		return fail("at least one image is required")
	}

	if in.Bedrooms < minRooms || in.Bedrooms > maxRooms {
		return fail("bedrooms must be between 1 and 50")
	}

	if in.Bathrooms < minRooms || in.Bathrooms > maxRooms {
		return fail("bathrooms must be between 1 and 50")
	}

	if in.RegularPrice < minPrice || in.RegularPrice > maxPrice {
		return fail("regular price must be between 50 and 750000000")
	}

	if in.Offer && (in.DiscountedPrice < minPrice || in.DiscountedPrice > maxPrice) {
		return fail("discounted price must be between 50 and 750000000")
	}

	if n := utf8.RuneCountInString(in.Name); n < minNameLen || n > maxNameLen {
		return fail("name length must be between 10 and 32")
	}

	if in.Type != models.TypeSale && in.Type != models.TypeRent {
		return fail("type must be sale or rent")
	}

	if in.OwnerID == uuid.Nil {
		return fail("owner is required")
	}

	if geocodeEnabled && strings.TrimSpace(in.Address) == "" {
		return fail("address is required")
	}

	return nil
}
