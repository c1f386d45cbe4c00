package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avertine/listings-service/internal/models"
	"github.com/avertine/listings-service/internal/service"
	apierrors "github.com/avertine/listings-service/internal/transport/http/errors"
	"github.com/avertine/listings-service/internal/transport/http/middleware"
)

// maxMultipartMemory — порог буферизации multipart-формы в памяти;
// остальное net/http сбрасывает во временные файлы.
const maxMultipartMemory = 32 << 20

// listingResponse — wire-представление объявления для фронта.
// Имена полей повторяют контракт фронтенда (camelCase);
// discountedPrice присутствует только при offer == true.
type listingResponse struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	Name            string           `json:"name"`
	Bedrooms        int32            `json:"bedrooms"`
	Bathrooms       int32            `json:"bathrooms"`
	Parking         bool             `json:"parking"`
	Furnished       bool             `json:"furnished"`
	Offer           bool             `json:"offer"`
	RegularPrice    int64            `json:"regularPrice"`
	DiscountedPrice *int64           `json:"discountedPrice,omitempty"`
	Location        string           `json:"location"`
	Geolocation     geoPointResponse `json:"geolocation"`
	ImgURLs         []string         `json:"imgUrls"`
	UserRef         string           `json:"userRef"`
	Timestamp       time.Time        `json:"timestamp"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type geoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func listingFromModel(l *models.Listing) listingResponse {
	resp := listingResponse{
		ID:           l.ID.String(),
		Type:         l.Type.String(),
		Name:         l.Name,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Parking:      l.Parking,
		Furnished:    l.Furnished,
		Offer:        l.Offer,
		RegularPrice: l.RegularPrice,
		Location:     l.Location,
		Geolocation:  geoPointResponse{Lat: l.Geolocation.Lat, Lng: l.Geolocation.Lng},
		ImgURLs:      l.ImgURLs,
		UserRef:      l.UserRef.String(),
		Timestamp:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}

	if l.Offer {
		price := l.DiscountedPrice
		resp.DiscountedPrice = &price
	}

	return resp
}

// CreateListing — POST /listings (multipart/form-data).
func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	in, err := parseListingForm(r)
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%w: %v", service.ErrInvalidArgument, err))
		return
	}

	in.OwnerID = owner

	listing, err := h.Service.CreateListing(r.Context(), *in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, listingFromModel(listing))
}

// UpdateListing — PUT /listings/{id} (multipart/form-data, полная перезапись).
func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	in, err := parseListingForm(r)
	if err != nil {
		apierrors.WriteError(w, r, fmt.Errorf("%w: %v", service.ErrInvalidArgument, err))
		return
	}

	in.OwnerID = owner

	listing, err := h.Service.UpdateListing(r.Context(), listingID, *in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listingFromModel(listing))
}

// GetListing — GET /listings/{id}.
func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	listing, err := h.Service.ListingByID(r.Context(), listingID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listingFromModel(listing))
}

// ListOwnerListings — GET /users/{id}/listings, новые первыми.
func (h *Handlers) ListOwnerListings(w http.ResponseWriter, r *http.Request) {
	owner, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	listings, err := h.Service.ListingsByOwner(r.Context(), owner)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := make([]listingResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, listingFromModel(&listings[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteListing — DELETE /listings/{id}.
func (h *Handlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserID(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.DeleteListing(r.Context(), listingID, actor); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListingForm разбирает multipart-форму черновика в SubmitListingInput.
// Имена полей повторяют контракт фронтенда; файлы — в части "images".
// Бизнес-валидация лимитов здесь не выполняется — это дело сервисного слоя.
func parseListingForm(r *http.Request) (*service.SubmitListingInput, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	listingType, err := models.ParseListingType(r.FormValue("type"))
	if err != nil {
		return nil, err
	}

	bedrooms, err := formInt32(r, "bedrooms")
	if err != nil {
		return nil, err
	}

	bathrooms, err := formInt32(r, "bathrooms")
	if err != nil {
		return nil, err
	}

	regularPrice, err := formInt64(r, "regularPrice")
	if err != nil {
		return nil, err
	}

	in := service.SubmitListingInput{
		Type:         listingType,
		Name:         r.FormValue("name"),
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		Parking:      formBool(r, "parking"),
		Furnished:    formBool(r, "furnished"),
		Offer:        formBool(r, "offer"),
		Address:      r.FormValue("address"),
		Latitude:     r.FormValue("latitude"),
		Longitude:    r.FormValue("longitude"),
		RegularPrice: regularPrice,
	}

	if in.Offer {
		discounted, err := formInt64(r, "discountedPrice")
		if err != nil {
			return nil, err
		}
		in.DiscountedPrice = discounted
	}

	images, err := formImages(r)
	if err != nil {
		return nil, err
	}
	in.Images = images

	return &in, nil
}

func formImages(r *http.Request) ([]models.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["images"]
	images := make([]models.ImageUpload, 0, len(headers))

	for _, fh := range headers {
		img, err := readImagePart(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, nil
}

func readImagePart(fh *multipart.FileHeader) (models.ImageUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return models.ImageUpload{}, fmt.Errorf("open image part %q: %w", fh.Filename, err)
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		return models.ImageUpload{}, fmt.Errorf("read image part %q: %w", fh.Filename, err)
	}

	return models.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func formInt32(r *http.Request, field string) (int32, error) {
	value, err := strconv.ParseInt(r.FormValue(field), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", field, err)
	}
	return int32(value), nil
}

func formInt64(r *http.Request, field string) (int64, error) {
	value, err := strconv.ParseInt(r.FormValue(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", field, err)
	}
	return value, nil
}

func formBool(r *http.Request, field string) bool {
	value, err := strconv.ParseBool(r.FormValue(field))
	if err != nil {
		return false
	}
	return value
}
