// README: Order stage model; raw status tokens normalized into an ordered set of stages.
package status

import "strings"

type Stage string

const (
	StageConfirmed                    Stage = "confirmed"
	StagePickedUpFromBranch           Stage = "pickedUpFromBranch"
	StageOutForDelivery               Stage = "outForDelivery"
	StageAwaitingCustomerConfirmation Stage = "awaitingCustomerConfirmation"
	StageDelivered                    Stage = "delivered"
	StageCancelled                    Stage = "cancelled"
)

// Steps is the fixed progress list rendered by the presentation layer.
var Steps = []Stage{
	StageConfirmed,
	StagePickedUpFromBranch,
	StageOutForDelivery,
	StageAwaitingCustomerConfirmation,
	StageDelivered,
}

// RawStageTable maps every known server token onto a stage.
var RawStageTable = map[string]Stage{
	"pending":   StageConfirmed,
	"confirmed": StageConfirmed,
	"placed":    StageConfirmed,
	"created":   StageConfirmed,

	"accepted":           StagePickedUpFromBranch,
	"assigned":           StagePickedUpFromBranch,
	"picked_up":          StagePickedUpFromBranch,
	"picked-up":          StagePickedUpFromBranch,
	"pickedup":           StagePickedUpFromBranch,
	"pickedupfrombranch": StagePickedUpFromBranch,

	"in-progress":      StageOutForDelivery,
	"in_progress":      StageOutForDelivery,
	"out_for_delivery": StageOutForDelivery,
	"outfordelivery":   StageOutForDelivery,
	"on_the_way":       StageOutForDelivery,

	"arrived":                      StageAwaitingCustomerConfirmation,
	"reached":                      StageAwaitingCustomerConfirmation,
	"awaiting_confirmation":        StageAwaitingCustomerConfirmation,
	"awaitingcustomerconfirmation": StageAwaitingCustomerConfirmation,

	"delivered": StageDelivered,
	"completed": StageDelivered,

	"cancelled": StageCancelled,
	"canceled":  StageCancelled,
	"rejected":  StageCancelled,
	"failed":    StageCancelled,
}

// Index returns the position of s in Steps, or -1 for cancelled and unknown stages.
func (s Stage) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Stage) Terminal() bool {
	return s == StageDelivered || s == StageCancelled
}

// Active reports whether live location samples are meaningful in this stage.
func (s Stage) Active() bool {
	return !s.Terminal()
}

// Classify never fails; unrecognized tokens are reported as confirmed.
func Classify(raw string) Stage {
	key := strings.ToLower(strings.TrimSpace(raw))
	if st, ok := RawStageTable[key]; ok {
		return st
	}
	return StageConfirmed
}

// Known reports whether raw is in the token table.
func Known(raw string) bool {
	_, ok := RawStageTable[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
