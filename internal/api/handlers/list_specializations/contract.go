package list_specializations

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
)

type RegistryService interface {
	ListSpecializations(ctx context.Context) ([]*domain.Specialization, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
