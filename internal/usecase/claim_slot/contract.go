package claim_slot

import (
	"context"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/integrations/identity"
)

// SlotRepository интерфейс репозитория талонов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Claim(ctx context.Context, slotID int64, patientID int64) error
}

// ScheduleLineRepository интерфейс репозитория строк расписания
type ScheduleLineRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleLine, error)
}

// SpecializationRepository интерфейс справочника специализаций
type SpecializationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialization, error)
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// IdentityClient интерфейс клиента identity-провайдера
type IdentityClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*identity.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
