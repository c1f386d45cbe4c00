package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client реализует Geocoder поверх Google-совместимого Geocoding JSON API
// (GET endpoint?address=...&key=...). HTTP-клиент настраивается извне
// (таймауты, прокси и т.д.).
type Client struct {
	httpc    *http.Client
	endpoint string
	apiKey   string
}

// New создаёт новый клиент геокодера.
func New(httpc *http.Client, endpoint, apiKey string) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{httpc: httpc, endpoint: endpoint, apiKey: apiKey}
}

// Ответ Geocoding API: нам нужны только статус и первый результат.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

const (
	statusZeroResults = "ZERO_RESULTS"

	// Геокодер подставляет литерал "undefined" вместо фрагментов адреса,
	// которые не смог распознать. Такой formatted_address непригоден.
	placeholderFragment = "undefined"
)

// Geocode выполняет один запрос к геокодеру и разбирает первый результат.
// Ошибки: ErrNoResults при ZERO_RESULTS, пустом formatted_address или
// placeholder-фрагменте в нём, иные (сеть, не-200, битый JSON) — как есть.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	const op = "geocode/Geocode"

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var doc geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if doc.Status == statusZeroResults || len(doc.Results) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoResults)
	}

	first := doc.Results[0]

	location := strings.TrimSpace(first.FormattedAddress)
	if location == "" || strings.Contains(location, placeholderFragment) {
		return nil, fmt.Errorf("%s: %w", op, ErrNoResults)
	}

	return &Result{
		Location: location,
		Lat:      first.Geometry.Location.Lat,
		Lng:      first.Geometry.Location.Lng,
	}, nil
}

// Проверка выполнения контракта.
var _ Geocoder = (*Client)(nil)
