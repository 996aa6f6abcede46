package schedule

import (
	"context"
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
)

// ScheduleLineRepository интерфейс репозитория строк расписания
type ScheduleLineRepository interface {
	Create(ctx context.Context, line *domain.ScheduleLine) (*domain.ScheduleLine, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleLine, error)
	List(ctx context.Context, filter domain.ScheduleLineFilter) ([]*domain.ScheduleLine, error)
	UpdatePlan(ctx context.Context, line *domain.ScheduleLine) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория талонов
type SlotRepository interface {
	CountFree(ctx context.Context, scheduleLineID int64) (domain.FreeSlotCounts, error)
	Release(ctx context.Context, slotID int64) error
	ListByClaimant(ctx context.Context, patientID int64) ([]*domain.PatientBooking, error)
}

// SpecializationRepository интерфейс справочника специализаций
type SpecializationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
