package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/avertine/listings-service/internal/geocode"
	"github.com/avertine/listings-service/internal/pkg/log"
)

// resolveLocation разрешает локацию черновика.
//
// При выключенном геокодинге координаты берутся из вручную введённых
// широты/долготы, а канонический адрес — из черновика как есть.
// Ручные координаты валидируются явно: нечисловые, нефинитные и
// выходящие за диапазон значения отвергаются с ErrInvalidAddress.
//
// При включённом геокодинге выполняется ровно один запрос к внешнему
// геокодеру без ретраев; ZERO_RESULTS и пустой канонический адрес
// превращаются в ErrInvalidAddress, транзиентные ошибки — в ErrInternal.
func (s *Service) resolveLocation(ctx context.Context, in SubmitListingInput) (*geocode.Result, error) {
	const op = "service/listings/resolveLocation"

	lg := log.From(ctx).With("op", op)

	if !s.cfg.Geocode.Enabled {
		lat, err := parseCoordinate(in.Latitude, 90)
		if err != nil {
			lg.Warn("invalid manual latitude", "value", in.Latitude)

			return nil, fmt.Errorf("%s: %w: invalid coordinates", op, ErrInvalidAddress)
		}

		lng, err := parseCoordinate(in.Longitude, 180)
		if err != nil {
			lg.Warn("invalid manual longitude", "value", in.Longitude)

			return nil, fmt.Errorf("%s: %w: invalid coordinates", op, ErrInvalidAddress)
		}

		return &geocode.Result{
			Location: in.Address,
			Lat:      lat,
			Lng:      lng,
		}, nil
	}

	result, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) {
			lg.Warn("address not resolved")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidAddress)
		}

		lg.Error("geocoder error", slog.String("err", err.Error()))

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// parseCoordinate разбирает ручную координату: только финитные числа
// в диапазоне [-bound, bound].
func parseCoordinate(value string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < -bound || v > bound {
		return 0, fmt.Errorf("coordinate %v out of range", v)
	}

	return v, nil
}
