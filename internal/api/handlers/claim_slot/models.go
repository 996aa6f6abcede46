package claim_slot

import (
	claimSlot "github.com/onmarkov/polyclinic/internal/usecase/claim_slot"
)

// ClaimSlotResponse HTTP response model подтвержденного бронирования
type ClaimSlotResponse struct {
	SlotID    int64  `json:"slotId"`
	TimeOfDay string `json:"timeOfDay,omitempty"`
	Message   string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *claimSlot.Response) *ClaimSlotResponse {
	out := &ClaimSlotResponse{
		SlotID:  resp.Slot.ID,
		Message: resp.Message,
	}
	if resp.Slot.TimeOfDay != nil {
		out.TimeOfDay = resp.Slot.TimeOfDay.String()
	}
	return out
}
