// README: Notification events and the default log-backed sink.
package tracking

import (
	"context"
	"log/slog"
	"time"

	"ordertrack/internal/modules/status"
	"ordertrack/internal/types"
)

type NotificationKind string

const (
	NotifyStageChanged       NotificationKind = "stage_changed"
	NotifyPartnerAssigned    NotificationKind = "partner_assigned"
	NotifyConnectionDegraded NotificationKind = "connection_degraded"
)

type Notification struct {
	OrderID types.ID         `json:"orderId"`
	Kind    NotificationKind `json:"kind"`
	Stage   status.Stage     `json:"stage,omitempty"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}

type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, n Notification) {
	s.logger.Info("notification", "order_id", n.OrderID, "kind", n.Kind, "stage", n.Stage, "message", n.Message)
}

func stageMessage(st status.Stage) string {
	switch st {
	case status.StageConfirmed:
		return "Order confirmed"
	case status.StagePickedUpFromBranch:
		return "Order picked up from the store"
	case status.StageOutForDelivery:
		return "Order is on the way"
	case status.StageAwaitingCustomerConfirmation:
		return "Your order has arrived"
	case status.StageDelivered:
		return "Order delivered"
	case status.StageCancelled:
		return "Order cancelled"
	}
	return string(st)
}
