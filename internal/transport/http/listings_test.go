package http

// Тесты HTTP-слоя поверх полного роутера (chi + middleware + хендлеры):
// сервис настоящий, подменяются только storage/geocoder/events через gomock.
//
// Проверяем:
//  - JSON-контракт ответа (camelCase, discountedPrice только при offer);
//  - защиту мутаций Bearer-токеном (401 без/с битым токеном);
//  - разбор multipart-формы черновика и прохождение конвейера;
//  - маппинг ошибок сервиса в статусы (400/403/404).

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avertine/listings-service/internal/config"
	"github.com/avertine/listings-service/internal/models"
	"github.com/avertine/listings-service/internal/service"
	"github.com/avertine/listings-service/internal/storage"
	"github.com/avertine/listings-service/mocks"
)

const testSecret = "test-secret"

type routerMocks struct {
	listings *mocks.MockListingsStorage
	images   *mocks.MockImagesStorage
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := routerMocks{
		listings: mocks.NewMockListingsStorage(ctrl),
		images:   mocks.NewMockImagesStorage(ctrl),
	}

	svc := service.New(m.listings, m.images, nil, nil, &config.Config{})

	router := NewRouter(svc, Options{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTSecret: testSecret,
	})
	return router, m, ctrl
}

func bearer(t *testing.T, subject uuid.UUID) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

// listingForm — поля multipart-формы черновика; images добавляются отдельно.
func listingForm() map[string]string {
	return map[string]string{
		"type":         "rent",
		"name":         "Cozy riverside apartment",
		"bedrooms":     "2",
		"bathrooms":    "1",
		"parking":      "true",
		"furnished":    "false",
		"offer":        "false",
		"address":      "12 River Street",
		"latitude":     "56.95",
		"longitude":    "24.10",
		"regularPrice": "1200",
	}
}

func multipartBody(t *testing.T, fields map[string]string, images ...string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	for _, name := range images {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, name))
		header.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRouter_GetListing_OK(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	id := uuid.New()
	owner := uuid.New()
	m.listings.EXPECT().ListingByID(gomock.Any(), id).Return(&models.Listing{
		ID:           id,
		Type:         models.TypeSale,
		Name:         "Bright family house downtown",
		Bedrooms:     3,
		Bathrooms:    2,
		Offer:        false,
		RegularPrice: 250_000,
		Location:     "5 Hill Road",
		Geolocation:  models.GeoPoint{Lat: 1.5, Lng: 2.5},
		ImgURLs:      []string{"https://cdn.test/a"},
		UserRef:      owner,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+id.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, id.String(), body["id"])
	require.Equal(t, "sale", body["type"])
	require.Equal(t, owner.String(), body["userRef"])
	require.EqualValues(t, 250_000, body["regularPrice"])
	require.NotContains(t, body, "discountedPrice", "скидка отсутствует при offer=false")
	require.Contains(t, body, "geolocation")
	require.Contains(t, body, "imgUrls")
}

func TestRouter_GetListing_BadID(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_GetListing_NotFound(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	id := uuid.New()
	m.listings.EXPECT().ListingByID(gomock.Any(), id).Return(nil, storage.ErrNotFoundListing)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/"+id.String(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CreateListing_RequiresAuth(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	body, contentType := multipartBody(t, listingForm(), "front.jpg")
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CreateListing_OK(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	owner := uuid.New()

	m.images.EXPECT().
		StoreImage(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://cdn.test/images/front.jpg", nil)

	m.listings.EXPECT().
		CreateListing(gomock.Any(), gomock.AssignableToTypeOf(&models.Listing{})).
		DoAndReturn(func(_ context.Context, l *models.Listing) (*models.Listing, error) {
			require.Equal(t, owner, l.UserRef, "владелец берётся из токена, не из формы")
			require.Equal(t, models.TypeRent, l.Type)
			require.InDelta(t, 56.95, l.Geolocation.Lat, 1e-9)

			saved := *l
			saved.CreatedAt = time.Now().UTC()
			saved.UpdatedAt = saved.CreatedAt
			return &saved, nil
		})

	body, contentType := multipartBody(t, listingForm(), "front.jpg")
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t, owner))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, owner.String(), resp["userRef"])
	require.Equal(t, []any{"https://cdn.test/images/front.jpg"}, resp["imgUrls"])
}

func TestRouter_CreateListing_ValidationError(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	fields := listingForm()
	fields["offer"] = "true"
	fields["discountedPrice"] = "1200" // равна regularPrice — нарушение.

	body, contentType := multipartBody(t, fields, "front.jpg")
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t, uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CreateListing_BadFormField(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	fields := listingForm()
	fields["bedrooms"] = "many"

	body, contentType := multipartBody(t, fields, "front.jpg")
	req := httptest.NewRequest(http.MethodPost, "/listings", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t, uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_DeleteListing_Forbidden(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	id := uuid.New()
	m.listings.EXPECT().ListingByID(gomock.Any(), id).Return(&models.Listing{ID: id, UserRef: uuid.New()}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/listings/"+id.String(), nil)
	req.Header.Set("Authorization", bearer(t, uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_DeleteListing_OK(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	owner := uuid.New()
	id := uuid.New()
	m.listings.EXPECT().ListingByID(gomock.Any(), id).Return(&models.Listing{ID: id, UserRef: owner}, nil)
	m.listings.EXPECT().DeleteListing(gomock.Any(), id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/listings/"+id.String(), nil)
	req.Header.Set("Authorization", bearer(t, owner))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ListOwnerListings_OK(t *testing.T) {
	router, m, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	owner := uuid.New()
	m.listings.EXPECT().ListingsByOwner(gomock.Any(), owner).Return([]models.Listing{
		{ID: uuid.New(), UserRef: owner},
		{ID: uuid.New(), UserRef: owner},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+owner.String()+"/listings", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}
