package get_patient_bookings

import (
	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

// PatientBookingResponse HTTP response model одного талона пациента
type PatientBookingResponse struct {
	SlotID         int64  `json:"slotId"`
	ScheduleLineID int64  `json:"scheduleLineId"`
	Date           string `json:"date"`
	TimeOfDay      string `json:"timeOfDay,omitempty"`
	Specialization string `json:"specialization"`
	Room           int    `json:"room"`
	WindowStart    string `json:"windowStart"`
	WindowEnd      string `json:"windowEnd"`
}

// PatientBookingsResponse HTTP response model списка талонов пациента
type PatientBookingsResponse struct {
	Bookings []PatientBookingResponse `json:"bookings"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.PatientBookingsResponse) *PatientBookingsResponse {
	out := &PatientBookingsResponse{Bookings: make([]PatientBookingResponse, 0, len(resp.Bookings))}
	for _, b := range resp.Bookings {
		item := PatientBookingResponse{
			SlotID:         b.Slot.ID,
			ScheduleLineID: b.Line.ID,
			Date:           b.Line.Date.Format(domain.DateFormat),
			Specialization: b.SpecializationName,
			Room:           b.Line.Room,
			WindowStart:    b.Line.WindowStart.String(),
			WindowEnd:      b.Line.WindowEnd.String(),
		}
		if b.Slot.TimeOfDay != nil {
			item.TimeOfDay = b.Slot.TimeOfDay.String()
		}
		out.Bookings = append(out.Bookings, item)
	}
	return out
}
