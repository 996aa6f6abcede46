package delete_specialization

import "context"

type RegistryService interface {
	DeleteSpecialization(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
