// README: Location sample and live channel connection state.
package location

import (
	"time"

	"ordertrack/internal/types"
)

// Sample is one partner position as received from the live channel or a snapshot.
type Sample struct {
	types.Point
	RecordedAt time.Time `json:"recordedAt"`
}

type ConnectionState string

const (
	Disconnected ConnectionState = "disconnected"
	Connecting   ConnectionState = "connecting"
	Connected    ConnectionState = "connected"
)
