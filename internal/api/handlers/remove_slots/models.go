package remove_slots

import (
	removeSlots "github.com/onmarkov/polyclinic/internal/usecase/remove_slots"
)

// RemoveSlotsResponse HTTP response model
type RemoveSlotsResponse struct {
	ScheduleLineID int64 `json:"scheduleLineId"`
	Removed        int64 `json:"removed"`
	NothingToDo    bool  `json:"nothingToDo"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *removeSlots.Response) *RemoveSlotsResponse {
	return &RemoveSlotsResponse{
		ScheduleLineID: resp.ScheduleLineID,
		Removed:        resp.Removed,
		NothingToDo:    resp.NothingToDo,
	}
}
