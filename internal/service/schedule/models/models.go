package models

import (
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/pkg/types"
)

// Request модели

// LineRequest запрос на создание или изменение строки расписания
type LineRequest struct {
	Date             time.Time
	SpecializationID int64
	DoctorID         int64
	Room             int
	WindowStart      types.TimeString
	WindowEnd        types.TimeString
	BudgetCount      int
	CommerceCount    int
}

// ToDomain конвертирует запрос в domain модель
func (r *LineRequest) ToDomain() *domain.ScheduleLine {
	return &domain.ScheduleLine{
		Date:             r.Date,
		SpecializationID: r.SpecializationID,
		DoctorID:         r.DoctorID,
		Room:             r.Room,
		WindowStart:      r.WindowStart,
		WindowEnd:        r.WindowEnd,
		BudgetCount:      r.BudgetCount,
		CommerceCount:    r.CommerceCount,
	}
}

// ListLinesRequest запрос списка строк расписания
type ListLinesRequest struct {
	DateFrom         *time.Time
	SpecializationID *int64
	DoctorID         *int64
	OnlyGenerated    bool
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListLinesRequest) ToDomainFilter() domain.ScheduleLineFilter {
	return domain.ScheduleLineFilter{
		DateFrom:         r.DateFrom,
		SpecializationID: r.SpecializationID,
		DoctorID:         r.DoctorID,
		OnlyGenerated:    r.OnlyGenerated,
	}
}

// Response модели

// LineResponse строка расписания со счетчиками свободных талонов
type LineResponse struct {
	Line       *domain.ScheduleLine
	FreeCounts domain.FreeSlotCounts
}

// LineListResponse список строк расписания
type LineListResponse struct {
	Lines []LineResponse
}

// PatientBookingsResponse список талонов пациента
type PatientBookingsResponse struct {
	Bookings []*domain.PatientBooking
}
