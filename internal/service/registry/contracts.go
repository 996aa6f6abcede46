package registry

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/integrations/identity"
)

// SpecializationRepository интерфейс справочника специализаций
type SpecializationRepository interface {
	Create(ctx context.Context, name string) (*domain.Specialization, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
	List(ctx context.Context) ([]*domain.Specialization, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// IdentityClient интерфейс клиента identity-провайдера
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*identity.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
