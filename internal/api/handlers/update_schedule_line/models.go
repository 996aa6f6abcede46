package update_schedule_line

import (
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
	"github.com/onmarkov/polyclinic/pkg/types"
)

// UpdateScheduleLineRequest HTTP request model
type UpdateScheduleLineRequest struct {
	Date             string `json:"date"` // "2025-10-15"
	SpecializationID int64  `json:"specializationId"`
	DoctorID         int64  `json:"doctorId"`
	Room             int    `json:"room"`
	WindowStart      string `json:"windowStart"` // "09:00"
	WindowEnd        string `json:"windowEnd"`   // "12:00"
	BudgetCount      int    `json:"budgetCount"`
	CommerceCount    int    `json:"commerceCount"`
}

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
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleLineRequest) ToServiceRequest() (*models.LineRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	windowStart, err := types.NewTimeStringFromString(r.WindowStart)
	if err != nil {
		return nil, err
	}

	windowEnd, err := types.NewTimeStringFromString(r.WindowEnd)
	if err != nil {
		return nil, err
	}

	return &models.LineRequest{
		Date:             date,
		SpecializationID: r.SpecializationID,
		DoctorID:         r.DoctorID,
		Room:             r.Room,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		BudgetCount:      r.BudgetCount,
		CommerceCount:    r.CommerceCount,
	}, nil
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(line *domain.ScheduleLine) *ScheduleLineResponse {
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
		CreatedAt:        line.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        line.UpdatedAt.Format(time.RFC3339),
	}
}
