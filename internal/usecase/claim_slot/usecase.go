package claim_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/onmarkov/polyclinic/internal/domain"
	slotRepo "github.com/onmarkov/polyclinic/internal/infra/storage/slot"
)

// UseCase координатор бронирования: принимает конкурентные попытки
// бронирования, разрешает гонки и возвращает пользовательские исходы.
type UseCase struct {
	slotRepo       SlotRepository
	lineRepo       ScheduleLineRepository
	specRepo       SpecializationRepository
	profileRepo    ProfileRepository
	identityClient IdentityClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	lineRepo ScheduleLineRepository,
	specRepo SpecializationRepository,
	profileRepo ProfileRepository,
	identityClient IdentityClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		lineRepo:       lineRepo,
		specRepo:       specRepo,
		profileRepo:    profileRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Execute выполняет попытку бронирования талона.
//
// Координатор сам ничего не блокирует: перечитывание занятости перед
// записью — только быстрый отказ без мутации, а корректность гонки
// обеспечивает единственный условный UPDATE в репозитории талонов.
// Проигравший гонку получает чистый исход AlreadyTaken, а не ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SlotID <= 0 || req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: slotID and patientID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("ClaimSlot: slot=%d, patient=%d", req.SlotID, req.PatientID)

	// Перечитываем занятость непосредственно перед записью
	current, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	if !current.IsFree() {
		// Повторный запрос владельца — идемпотентный успех без записи
		if current.IsClaimedBy(req.PatientID) {
			uc.logger.Info("ClaimSlot: slot=%d already held by patient=%d, no-op", req.SlotID, req.PatientID)
			return uc.confirmed(ctx, current, req.PatientID)
		}
		uc.logger.Info("ClaimSlot: slot=%d already taken, patient=%d rejected without write", req.SlotID, req.PatientID)
		return &Response{Outcome: OutcomeAlreadyTaken}, nil
	}

	if err := uc.slotRepo.Claim(ctx, req.SlotID, req.PatientID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotTaken):
			uc.logger.Info("ClaimSlot: slot=%d lost race, patient=%d", req.SlotID, req.PatientID)
			return &Response{Outcome: OutcomeAlreadyTaken}, nil

		case errors.Is(err, slotRepo.ErrDuplicateClaim):
			uc.logger.Info("ClaimSlot: patient=%d already holds a slot of line=%d", req.PatientID, current.ScheduleLineID)
			return &Response{Outcome: OutcomeDuplicateClaim}, nil

		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound

		default:
			uc.logger.Error("ClaimSlot: slot=%d claim failed: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ClaimSlot: slot=%d confirmed for patient=%d", req.SlotID, req.PatientID)

	claimed := *current
	claimed.ClaimantID = &req.PatientID
	return uc.confirmed(ctx, &claimed, req.PatientID)
}

// confirmed собирает подтвержденный исход с человекочитаемым сообщением.
// Данные identity-провайдера нужны только для подписей: при его
// недоступности сообщение собирается с заглушками, бронь уже проведена.
func (uc *UseCase) confirmed(ctx context.Context, s *domain.Slot, patientID int64) (*Response, error) {
	message := uc.buildMessage(ctx, s, patientID)
	return &Response{
		Outcome: OutcomeConfirmed,
		Message: message,
		Slot:    s,
	}, nil
}

func (uc *UseCase) buildMessage(ctx context.Context, s *domain.Slot, patientID int64) string {
	line, err := uc.lineRepo.GetByID(ctx, s.ScheduleLineID)
	if err != nil {
		uc.logger.Error("ClaimSlot: failed to get line=%d for message: %v", s.ScheduleLineID, err)
		return msgConfirmedGeneric
	}

	specName := ""
	if spec, err := uc.specRepo.GetByID(ctx, line.SpecializationID); err == nil {
		specName = spec.Name
	} else {
		uc.logger.Warn("ClaimSlot: failed to get specialization=%d for message: %v", line.SpecializationID, err)
	}

	doctorLabel := msgUnknownDoctor
	if doctor, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, line.DoctorID); err == nil {
		patronymic := ""
		if p, err := uc.profileRepo.GetByUserID(ctx, line.DoctorID); err == nil {
			patronymic = p.Patronymic
		}
		doctorLabel = domain.DoctorShortName(doctor.LastName, doctor.FirstName, patronymic)
	}

	greeting := ""
	if patient, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, patientID); err == nil {
		greeting = patient.FirstName
		if p, err := uc.profileRepo.GetByUserID(ctx, patientID); err == nil && p.HasPatronymic() {
			greeting += " " + p.Patronymic
		}
		greeting += "! "
	} else {
		uc.logger.Warn("ClaimSlot: greeting degraded for patient=%d: %v", patientID, err)
	}

	ticket := domain.TicketLabel(line, specName, doctorLabel)
	if s.IsTimed() {
		return fmt.Sprintf("%s%s забронирован для посещения на время %s.", greeting, ticket, *s.TimeOfDay)
	}
	return fmt.Sprintf("%s%s забронирован для посещения.", greeting, ticket)
}

const (
	msgConfirmedGeneric = "Талон забронирован для посещения."
	msgUnknownDoctor    = "врач не указан"
)
