// README: Session phase derived from load state, stage, partner assignment and pickup.
package tracking

import "ordertrack/internal/modules/status"

type Phase string

const (
	PhaseLoading              Phase = "loading"
	PhaseActiveNoPartner      Phase = "active-no-partner"
	PhasePrePickup            Phase = "active-with-partner-pre-pickup"
	PhasePostPickup           Phase = "active-with-partner-post-pickup"
	PhaseAwaitingConfirmation Phase = "awaiting-confirmation"
	PhaseTerminal             Phase = "terminal"
)

func derivePhase(loaded bool, stage status.Stage, hasPartner, pickedUp bool) Phase {
	switch {
	case !loaded:
		return PhaseLoading
	case stage.Terminal():
		return PhaseTerminal
	case stage == status.StageAwaitingCustomerConfirmation:
		return PhaseAwaitingConfirmation
	case !hasPartner:
		return PhaseActiveNoPartner
	case pickedUp:
		return PhasePostPickup
	}
	return PhasePrePickup
}
