package geo

import (
	"fmt"
	"math"
)

// Fallback ETA constants. The pre-pickup pair is shared with the checkout quote and
// must not diverge from it.
const (
	PrePickupMinutesPerKm  = 5.0
	PrePickupBaseMinutes   = 15.0
	PostPickupMinutesPerKm = 3.0
	PostPickupBaseMinutes  = 5.0
)

// FallbackMinutes returns ceil(distanceKm*perKm + base) for the given side of the
// pickup boundary.
func FallbackMinutes(distanceKm float64, pickedUp bool) int {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		distanceKm = 0
	}
	perKm, base := PrePickupMinutesPerKm, PrePickupBaseMinutes
	if pickedUp {
		perKm, base = PostPickupMinutesPerKm, PostPickupBaseMinutes
	}
	return int(math.Ceil(distanceKm*perKm + base))
}

// DistanceText renders a distance the way the directions service does ("3.4 km").
func DistanceText(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// DurationText renders whole minutes ("1 min", "23 mins").
func DurationText(minutes int) string {
	if minutes == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", minutes)
}
