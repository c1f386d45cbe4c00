package geocode

// Тесты клиента геокодера поверх httptest-сервера:
// разбор успешного ответа, ZERO_RESULTS, непригодный formatted_address
// (пустой и с placeholder-фрагментом), не-200 статусы и прокидывание
// query-параметров.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.Client(), srv.URL, "test-key")
}

func TestClient_Geocode_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "12 River Street", r.URL.Query().Get("address"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "12 River Street, Riga, Latvia",
				"geometry": {"location": {"lat": 56.9496, "lng": 24.1052}}
			}]
		}`))
	})

	got, err := c.Geocode(context.Background(), "12 River Street")
	require.NoError(t, err)
	require.Equal(t, "12 River Street, Riga, Latvia", got.Location)
	require.InDelta(t, 56.9496, got.Lat, 1e-9)
	require.InDelta(t, 24.1052, got.Lng, 1e-9)
}

func TestClient_Geocode_ZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := c.Geocode(context.Background(), "nowhere at all")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_EmptyResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	_, err := c.Geocode(context.Background(), "anything")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_BlankFormattedAddress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"formatted_address": "   ", "geometry": {"location": {"lat": 1, "lng": 2}}}]
		}`))
	})

	_, err := c.Geocode(context.Background(), "anything")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_PlaceholderFragment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "undefined, undefined 12345",
				"geometry": {"location": {"lat": 1, "lng": 2}}
			}]
		}`))
	})

	_, err := c.Geocode(context.Background(), "half-known street")
	require.ErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_Non200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Geocode(context.Background(), "anything")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_BrokenJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": [`))
	})

	_, err := c.Geocode(context.Background(), "anything")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoResults)
}

func TestClient_Geocode_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Geocode(ctx, "anything")
	require.ErrorIs(t, err, context.Canceled)
}
