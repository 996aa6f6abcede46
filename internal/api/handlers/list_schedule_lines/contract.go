package list_schedule_lines

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type ScheduleService interface {
	ListLines(ctx context.Context, req *models.ListLinesRequest) (*models.LineListResponse, error)
	ListAvailableLines(ctx context.Context, req *models.ListLinesRequest) (*models.LineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
