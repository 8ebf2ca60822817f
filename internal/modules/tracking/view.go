// README: Combined view published to subscribers on every meaningful change.
package tracking

import (
	"time"

	"ordertrack/internal/maps"
	"ordertrack/internal/modules/location"
	"ordertrack/internal/modules/order"
	"ordertrack/internal/modules/status"
	"ordertrack/internal/modules/viewport"
	"ordertrack/internal/types"
)

type ETASource string

const (
	ETAFromStream      ETASource = "stream"
	ETAFromService     ETASource = "service"
	ETAFromSynthesized ETASource = "synthesized"
)

type ETA struct {
	Seconds int       `json:"seconds"`
	Text    string    `json:"text"`
	Source  ETASource `json:"source"`
}

type View struct {
	SessionID  string                   `json:"sessionId"`
	OrderID    types.ID                 `json:"orderId"`
	Phase      Phase                    `json:"phase"`
	Stage      status.Stage             `json:"stage,omitempty"`
	Steps      []status.Step            `json:"steps,omitempty"`
	Position   *types.Point             `json:"position,omitempty"`
	Target     *location.Sample         `json:"target,omitempty"`
	Route      *maps.RoutePlan          `json:"routePlan,omitempty"`
	ETA        *ETA                     `json:"eta,omitempty"`
	Region     *viewport.Region         `json:"viewportRegion,omitempty"`
	Connection location.ConnectionState `json:"connectionState"`
	Degraded   bool                     `json:"degraded"`
	Error      string                   `json:"error,omitempty"`
	Order      *order.Order             `json:"order,omitempty"`
	UpdatedAt  time.Time                `json:"updatedAt"`
	Version    int64                    `json:"version"`
}
