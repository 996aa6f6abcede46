package generate_slots

import (
	generateSlots "github.com/onmarkov/polyclinic/internal/usecase/generate_slots"
)

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	ScheduleLineID   int64 `json:"scheduleLineId"`
	Created          int   `json:"created"`
	AlreadyGenerated bool  `json:"alreadyGenerated"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		ScheduleLineID:   resp.ScheduleLineID,
		Created:          resp.Created,
		AlreadyGenerated: resp.AlreadyGenerated,
	}
}
