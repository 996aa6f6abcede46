package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/internal/integrations/identity"
	profileRepo "github.com/onmarkov/polyclinic/internal/infra/storage/profile"
	specializationRepo "github.com/onmarkov/polyclinic/internal/infra/storage/specialization"
)

// Service сервис справочников: специализации и профили пользователей
type Service struct {
	specRepo       SpecializationRepository
	profileRepo    ProfileRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(
	specRepo SpecializationRepository,
	profileRepo ProfileRepository,
	identityClient IdentityClient,
	logger Logger,
) *Service {
	return &Service{
		specRepo:       specRepo,
		profileRepo:    profileRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// ProvisionProfileRequest запрос на создание профиля пользователя
type ProvisionProfileRequest struct {
	UserID     int64
	Patronymic string
	BirthDate  *time.Time
	Gender     *string
	IDNumber   *string
	Note       *string
}

// ProvisionProfileResponse результат создания профиля
type ProvisionProfileResponse struct {
	Profile            *domain.Profile
	AlreadyProvisioned bool
}

// CreateSpecialization добавляет специализацию в справочник
func (s *Service) CreateSpecialization(ctx context.Context, name string) (*domain.Specialization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: specialization name is required", ErrInvalidInput)
	}

	spec, err := s.specRepo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, specializationRepo.ErrNameExists) {
			s.logger.Warn("CreateSpecialization: name %q already exists", name)
			return nil, ErrSpecializationExists
		}
		s.logger.Error("CreateSpecialization: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecialization - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpecialization: created specialization id=%d, name=%q", spec.ID, spec.Name)
	return spec, nil
}

// ListSpecializations получает справочник специализаций по алфавиту
func (s *Service) ListSpecializations(ctx context.Context) ([]*domain.Specialization, error) {
	specs, err := s.specRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSpecializations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecializations - repository error: %v", ErrInternal, err)
	}
	return specs, nil
}

// DeleteSpecialization удаляет специализацию. Специализация, на которую
// ссылаются строки расписания, не удаляется.
func (s *Service) DeleteSpecialization(ctx context.Context, id int64) error {
	if err := s.specRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, specializationRepo.ErrNotFound):
			s.logger.Warn("DeleteSpecialization: specialization id=%d not found", id)
			return ErrSpecializationNotFound
		case errors.Is(err, specializationRepo.ErrHasDependents):
			s.logger.Warn("DeleteSpecialization: specialization id=%d is in use", id)
			return ErrSpecializationInUse
		default:
			s.logger.Error("DeleteSpecialization: repository error for id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteSpecialization - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteSpecialization: deleted specialization id=%d", id)
	return nil
}

// ProvisionProfile создает профиль для пользователя, зарегистрированного
// у identity-провайдера. Повторный вызов для того же пользователя
// возвращает существующий профиль без изменений.
func (s *Service) ProvisionProfile(ctx context.Context, req *ProvisionProfileRequest) (*ProvisionProfileResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", ErrInvalidInput)
	}

	// Профиль заводится только для реального пользователя провайдера
	user, err := s.identityClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.logger.Warn("ProvisionProfile: user id=%d not found in identity provider", req.UserID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("ProvisionProfile: identity provider error for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	created, err := s.profileRepo.Create(ctx, &domain.Profile{
		UserID:     req.UserID,
		Patronymic: req.Patronymic,
		BirthDate:  req.BirthDate,
		Gender:     req.Gender,
		IDNumber:   req.IDNumber,
		Note:       req.Note,
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileExists) {
			existing, getErr := s.profileRepo.GetByUserID(ctx, req.UserID)
			if getErr != nil {
				return nil, fmt.Errorf("%w: ProvisionProfile - failed to load existing profile: %v", ErrInternal, getErr)
			}
			s.logger.Info("ProvisionProfile: profile for user id=%d already exists", req.UserID)
			return &ProvisionProfileResponse{Profile: existing, AlreadyProvisioned: true}, nil
		}
		s.logger.Error("ProvisionProfile: repository error for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ProvisionProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ProvisionProfile: created profile for %s (user id=%d)",
		domain.PersonLabel(user.LastName, user.FirstName, created.Patronymic, created.BirthDate), req.UserID)
	return &ProvisionProfileResponse{Profile: created}, nil
}
