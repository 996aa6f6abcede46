package get_schedule_line

import (
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

// ScheduleLineResponse HTTP response model
type ScheduleLineResponse struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`
	SpecializationID int64  `json:"specializationId"`
	DoctorID         int64  `json:"doctorId"`
	Room             int    `json:"room"`
	WindowStart      string `json:"windowStart"`
	WindowEnd        string `json:"windowEnd"`
	BudgetCount      int    `json:"budgetCount"`
	CommerceCount    int    `json:"commerceCount"`
	SlotsGenerated   bool   `json:"slotsGenerated"`
	FreeBudget       int    `json:"freeBudget"`
	FreeCommerce     int    `json:"freeCommerce"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.LineResponse) *ScheduleLineResponse {
	line := resp.Line
	return &ScheduleLineResponse{
		ID:               line.ID,
		Date:             line.Date.Format(domain.DateFormat),
		SpecializationID: line.SpecializationID,
		DoctorID:         line.DoctorID,
		Room:             line.Room,
		WindowStart:      line.WindowStart.String(),
		WindowEnd:        line.WindowEnd.String(),
		BudgetCount:      line.BudgetCount,
		CommerceCount:    line.CommerceCount,
		SlotsGenerated:   line.SlotsGenerated,
		FreeBudget:       resp.FreeCounts.Budget,
		FreeCommerce:     resp.FreeCounts.Commerce,
		CreatedAt:        line.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        line.UpdatedAt.Format(time.RFC3339),
	}
}
