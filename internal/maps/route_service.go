// README: Directions backend that calls the Google Directions API directly.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleDirections struct {
	client   *maps.Client
	language string
	region   string
}

// NewGoogleDirections creates a Google backend. Extra client options (base URL,
// HTTP client) are passed through to the maps client.
func NewGoogleDirections(apiKey, language, region string, opts ...maps.ClientOption) (*GoogleDirections, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleDirections{client: client, language: language, region: region}, nil
}

func (g *GoogleDirections) Route(ctx context.Context, q Query) (*Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      q.Origin.LatLngString(),
		Destination: q.Destination.LatLngString(),
		Mode:        maps.TravelModeDriving,
		Language:    g.language,
		Region:      g.region,
	}

	routes, _, err := g.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	best := routes[0]
	out := &Route{Polyline: best.OverviewPolyline.Points}
	for _, leg := range best.Legs {
		out.DistanceMeters += float64(leg.Meters)
		out.DurationSeconds += leg.Duration.Seconds()
	}
	if len(best.Legs) == 1 {
		out.DistanceText = best.Legs[0].Distance.HumanReadable
	}
	return out, nil
}
