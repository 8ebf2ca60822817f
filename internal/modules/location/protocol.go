// README: Live channel wire format; {"event","data"} text frames decoded into stream events.
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"ordertrack/internal/modules/order"
	"ordertrack/internal/types"
)

const (
	EventJoinRoom        = "joinRoom"
	EventDriverLocation  = "driverLocation"
	EventPartnerLocation = "deliveryPartnerLocationUpdate"
	EventOrderPickedUp   = "orderPickedUp"
	EventOrderUpdated    = "orderUpdated"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrBadPayload   = errors.New("bad event payload")
)

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Kind string

const (
	KindPosition   Kind = "position"
	KindPickedUp   Kind = "pickedUp"
	KindStatus     Kind = "status"
	KindConnection Kind = "connection"
)

// Event is what a Stream delivers to its consumer.
type Event struct {
	Kind    Kind
	OrderID types.ID

	Position   *Sample
	ETASeconds *int

	Status  string
	Partner *order.Partner

	Connection ConnectionState
	// Exhausted is set on the final disconnected event once the retry budget is spent.
	Exhausted bool
}

func EncodeFrame(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

func JoinRoomFrame(orderID types.ID) ([]byte, error) {
	return EncodeFrame(EventJoinRoom, string(orderID))
}

type partnerLocationPayload struct {
	OrderID  types.ID          `json:"orderId"`
	Location *order.Coordinate `json:"location"`
	ETA      json.RawMessage   `json:"eta"`
	// routeData is ignored; the tracker computes its own route.
}

type orderUpdatedPayload struct {
	OrderID types.ID       `json:"orderId"`
	Status  string         `json:"status"`
	Partner *order.Partner `json:"deliveryPartner"`
}

type orderRefPayload struct {
	OrderID types.ID `json:"orderId"`
}

// Decode parses one inbound frame. now stamps position samples.
func Decode(msg []byte, now time.Time) (Event, error) {
	var f Frame
	if err := json.Unmarshal(msg, &f); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	switch f.Event {
	case EventDriverLocation:
		var c order.Coordinate
		if err := json.Unmarshal(f.Data, &c); err != nil {
			return Event{}, fmt.Errorf("%w: %s: %v", ErrBadPayload, f.Event, err)
		}
		var ref orderRefPayload
		_ = json.Unmarshal(f.Data, &ref)
		return positionEvent(ref.OrderID, types.Point(c), nil, now)

	case EventPartnerLocation:
		var p partnerLocationPayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return Event{}, fmt.Errorf("%w: %s: %v", ErrBadPayload, f.Event, err)
		}
		if p.Location == nil {
			return Event{}, fmt.Errorf("%w: %s: missing location", ErrBadPayload, f.Event)
		}
		return positionEvent(p.OrderID, types.Point(*p.Location), parseETA(p.ETA), now)

	case EventOrderPickedUp:
		var ref orderRefPayload
		_ = json.Unmarshal(f.Data, &ref)
		return Event{Kind: KindPickedUp, OrderID: ref.OrderID}, nil

	case EventOrderUpdated:
		var p orderUpdatedPayload
		if err := json.Unmarshal(f.Data, &p); err != nil {
			return Event{}, fmt.Errorf("%w: %s: %v", ErrBadPayload, f.Event, err)
		}
		if p.Status == "" && p.Partner == nil {
			return Event{}, fmt.Errorf("%w: %s: no status or partner", ErrBadPayload, f.Event)
		}
		return Event{Kind: KindStatus, OrderID: p.OrderID, Status: p.Status, Partner: p.Partner}, nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event)
}

func positionEvent(orderID types.ID, p types.Point, eta *int, now time.Time) (Event, error) {
	if !p.Valid() {
		return Event{}, fmt.Errorf("%w: invalid coordinate %+v", ErrBadPayload, p)
	}
	return Event{
		Kind:       KindPosition,
		OrderID:    orderID,
		Position:   &Sample{Point: p, RecordedAt: now},
		ETASeconds: eta,
	}, nil
}

// parseETA accepts a number of seconds or a {"value": seconds} object; anything else is dropped.
func parseETA(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var obj struct {
			Value *float64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || obj.Value == nil {
			return nil
		}
		secs = *obj.Value
	}
	if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return nil
	}
	v := int(math.Round(secs))
	return &v
}
