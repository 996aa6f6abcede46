package list_free_slots

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
)

// ScheduleLineRepository интерфейс репозитория строк расписания
type ScheduleLineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleLine, error)
}

// SlotRepository интерфейс репозитория талонов
type SlotRepository interface {
	ListFreeTimed(ctx context.Context, scheduleLineID int64) ([]*domain.Slot, error)
	CountFree(ctx context.Context, scheduleLineID int64) (domain.FreeSlotCounts, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
