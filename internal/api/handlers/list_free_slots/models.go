package list_free_slots

import (
	"github.com/onmarkov/polyclinic/internal/domain"
	listFreeSlots "github.com/onmarkov/polyclinic/internal/usecase/list_free_slots"
)

// FreeSlotResponse HTTP response model одного свободного талона
type FreeSlotResponse struct {
	ID        int64  `json:"id"`
	TimeOfDay string `json:"timeOfDay"`
}

// ListFreeSlotsResponse HTTP response model свободных талонов строки.
// Внеочередные талоны без времени представлены только счетчиком.
type ListFreeSlotsResponse struct {
	ScheduleLineID int64              `json:"scheduleLineId"`
	Date           string             `json:"date"`
	Slots          []FreeSlotResponse `json:"slots"`
	FreeBudget     int                `json:"freeBudget"`
	FreeCommerce   int                `json:"freeCommerce"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listFreeSlots.Response) *ListFreeSlotsResponse {
	out := &ListFreeSlotsResponse{
		ScheduleLineID: resp.Line.ID,
		Date:           resp.Line.Date.Format(domain.DateFormat),
		Slots:          make([]FreeSlotResponse, 0, len(resp.Slots)),
		FreeBudget:     resp.Counts.Budget,
		FreeCommerce:   resp.Counts.Commerce,
	}
	for _, slot := range resp.Slots {
		item := FreeSlotResponse{ID: slot.ID}
		if slot.TimeOfDay != nil {
			item.TimeOfDay = slot.TimeOfDay.String()
		}
		out.Slots = append(out.Slots, item)
	}
	return out
}
