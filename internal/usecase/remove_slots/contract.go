package remove_slots

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
)

// ScheduleLineRepository интерфейс репозитория строк расписания
type ScheduleLineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleLine, error)
	ResetGenerated(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория талонов
type SlotRepository interface {
	CountClaimed(ctx context.Context, scheduleLineID int64) (int, error)
	DeleteByLine(ctx context.Context, scheduleLineID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
