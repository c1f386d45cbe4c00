// geocode — разрешение свободного адреса во внешнем геокодере.
// geocode.go - контракт и доменные ошибки резолвера.
// google.go - реализация поверх Google-совместимого Geocoding JSON API.
package geocode

import (
	"context"
	"errors"
)

var (
	// ErrNoResults — геокодер не нашёл адрес (ZERO_RESULTS)
	// либо вернул результат без пригодного formatted_address
	// (пустой или с literal-placeholder'ом вместо части адреса).
	ErrNoResults = errors.New("no results")
)

// Result — результат разрешения одного адреса.
// Location — канонический адрес из первого результата геокодера;
// Lat/Lng — его координаты (0 при отсутствии в ответе).
type Result struct {
	Location string
	Lat      float64
	Lng      float64
}

// Geocoder описывает абстракцию внешнего геокодера.
//
// Требования к реализации:
// 1) Ровно один исходящий запрос на вызов, без ретраев —
// транзиентная сетевая ошибка отдаётся вызывающему как есть.
// 2) На ZERO_RESULTS и на непригодный formatted_address (пустой либо
// с placeholder-фрагментом) возвращается ErrNoResults.
// 3) Реализация обязана уважать ctx (отмена/таймауты).
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}
