package create_specialization

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
)

type RegistryService interface {
	CreateSpecialization(ctx context.Context, name string) (*domain.Specialization, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
