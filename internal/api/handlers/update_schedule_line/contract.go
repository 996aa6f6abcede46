package update_schedule_line

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateLine(ctx context.Context, id int64, req *models.LineRequest) (*domain.ScheduleLine, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
