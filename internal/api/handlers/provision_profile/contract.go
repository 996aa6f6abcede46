package provision_profile

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/service/registry"
)

type RegistryService interface {
	ProvisionProfile(ctx context.Context, req *registry.ProvisionProfileRequest) (*registry.ProvisionProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
