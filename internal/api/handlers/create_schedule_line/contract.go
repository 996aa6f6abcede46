package create_schedule_line

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateLine(ctx context.Context, req *models.LineRequest) (*domain.ScheduleLine, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
