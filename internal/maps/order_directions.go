// README: Directions backend served by the order service's customer directions endpoint.
package maps

import (
	"context"

	"ordertrack/internal/modules/order"
	"ordertrack/internal/types"
)

type customerDirections interface {
	CustomerDirections(ctx context.Context, id types.ID, req order.DirectionsRequest) (*order.RouteData, error)
}

type OrderServerDirections struct {
	client customerDirections
}

func NewOrderServerDirections(client customerDirections) *OrderServerDirections {
	return &OrderServerDirections{client: client}
}

func (d *OrderServerDirections) Route(ctx context.Context, q Query) (*Route, error) {
	if q.OrderID == "" {
		return nil, ErrNoRoute
	}
	rd, err := d.client.CustomerDirections(ctx, q.OrderID, order.DirectionsRequest{
		Origin:      order.WaypointOf(q.Origin, q.OriginAddress),
		Destination: order.WaypointOf(q.Destination, q.DestinationAddress),
		RouteType:   string(q.RouteType),
		UpdateOrder: false,
	})
	if err != nil {
		return nil, err
	}
	return &Route{
		Coordinates:     rd.Points(),
		Polyline:        string(rd.Polyline),
		DistanceText:    rd.Distance.Text,
		DurationText:    rd.Duration.Text,
		DistanceMeters:  rd.Distance.Value,
		DurationSeconds: rd.Duration.Value,
	}, nil
}
