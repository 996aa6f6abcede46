package get_schedule_line

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type ScheduleService interface {
	GetLine(ctx context.Context, id int64) (*models.LineResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
