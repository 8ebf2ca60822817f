// README: Quote service computes the checkout ETA with the same formula the tracker falls back to.
package quote

import (
	"errors"

	"ordertrack/internal/modules/geo"
)

var ErrInvalidPoint = errors.New("invalid coordinate")

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Estimate(req Request) (Quote, error) {
	if !req.Branch.Valid() || !req.Customer.Valid() {
		return Quote{}, ErrInvalidPoint
	}
	km := geo.FlatEarthKm(req.Branch, req.Customer)
	minutes := geo.FallbackMinutes(km, false)
	return Quote{
		DistanceKm:   km,
		DistanceText: geo.DistanceText(km),
		Minutes:      minutes,
		DurationText: geo.DurationText(minutes),
	}, nil
}
