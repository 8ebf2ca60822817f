// README: Pre-checkout delivery estimate shown before an order exists.
package quote

import "ordertrack/internal/types"

type Request struct {
	Branch   types.Point `json:"branch"`
	Customer types.Point `json:"customer"`
}

type Quote struct {
	DistanceKm   float64 `json:"distanceKm"`
	DistanceText string  `json:"distanceText"`
	Minutes      int     `json:"etaMinutes"`
	DurationText string  `json:"etaText"`
}
