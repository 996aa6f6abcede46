package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onmarkov/polyclinic/internal/domain"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	slotRepo "github.com/onmarkov/polyclinic/internal/infra/storage/slot"
	specializationRepo "github.com/onmarkov/polyclinic/internal/infra/storage/specialization"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
	"github.com/onmarkov/polyclinic/pkg/ptr"
	"github.com/onmarkov/polyclinic/pkg/types"
)

// Service сервис расписания приема: операции регистратуры над строками
// расписания и бронированиями
type Service struct {
	lineRepo     ScheduleLineRepository
	slotRepo     SlotRepository
	specRepo     SpecializationRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	lineRepo ScheduleLineRepository,
	slotRepo SlotRepository,
	specRepo SpecializationRepository,
	logger Logger,
) *Service {
	return &Service{
		lineRepo:     lineRepo,
		slotRepo:     slotRepo,
		specRepo:     specRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateLine создает строку расписания
func (s *Service) CreateLine(ctx context.Context, req *models.LineRequest) (*domain.ScheduleLine, error) {
	line := req.ToDomain()

	if err := s.validateLine(ctx, line); err != nil {
		s.logger.Warn("CreateLine: validation failed: %v", err)
		return nil, err
	}

	created, err := s.lineRepo.Create(ctx, line)
	if err != nil {
		if errors.Is(err, scheduleLineRepo.ErrLineExists) {
			s.logger.Warn("CreateLine: duplicate line date=%s, spec=%d, doctor=%d",
				line.Date.Format(domain.DateFormat), line.SpecializationID, line.DoctorID)
			return nil, ErrLineExists
		}
		s.logger.Error("CreateLine: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateLine: created line id=%d for date=%s, spec=%d, doctor=%d",
		created.ID, created.Date.Format(domain.DateFormat), created.SpecializationID, created.DoctorID)
	return created, nil
}

// UpdateLine изменяет плановые поля строки расписания.
// Строка с созданными талонами заморожена до удаления талонов.
func (s *Service) UpdateLine(ctx context.Context, id int64, req *models.LineRequest) (*domain.ScheduleLine, error) {
	line := req.ToDomain()
	line.ID = id

	if err := s.validateLine(ctx, line); err != nil {
		s.logger.Warn("UpdateLine: validation failed for line id=%d: %v", id, err)
		return nil, err
	}

	if err := s.lineRepo.UpdatePlan(ctx, line); err != nil {
		switch {
		case errors.Is(err, scheduleLineRepo.ErrLineNotFound):
			s.logger.Warn("UpdateLine: line id=%d not found", id)
			return nil, ErrLineNotFound
		case errors.Is(err, scheduleLineRepo.ErrLineImmutable):
			s.logger.Warn("UpdateLine: line id=%d is read-only, slots generated", id)
			return nil, ErrLineImmutable
		case errors.Is(err, scheduleLineRepo.ErrLineExists):
			return nil, ErrLineExists
		default:
			s.logger.Error("UpdateLine: repository error for line id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateLine - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateLine - failed to reload line: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateLine: updated line id=%d", id)
	return updated, nil
}

// DeleteLine удаляет строку расписания. Строка с талонами не удаляется:
// ссылочная целостность охраняется на уровне БД.
func (s *Service) DeleteLine(ctx context.Context, id int64) error {
	if err := s.lineRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, scheduleLineRepo.ErrLineNotFound):
			s.logger.Warn("DeleteLine: line id=%d not found", id)
			return ErrLineNotFound
		case errors.Is(err, scheduleLineRepo.ErrHasDependents):
			s.logger.Warn("DeleteLine: line id=%d has dependent slots", id)
			return ErrLineHasSlots
		default:
			s.logger.Error("DeleteLine: repository error for line id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteLine - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteLine: deleted line id=%d", id)
	return nil
}

// GetLine получает строку расписания со счетчиками свободных талонов
func (s *Service) GetLine(ctx context.Context, id int64) (*models.LineResponse, error) {
	line, err := s.lineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleLineRepo.ErrLineNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("%w: GetLine - repository error: %v", ErrInternal, err)
	}

	resp := models.LineResponse{Line: line}
	if line.SlotsGenerated {
		counts, err := s.slotRepo.CountFree(ctx, line.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLine - failed to count free slots: %v", ErrInternal, err)
		}
		resp.FreeCounts = counts
	}

	return &resp, nil
}

// ListLines получает строки расписания по фильтру вместе со счетчиками
// свободных талонов
func (s *Service) ListLines(ctx context.Context, req *models.ListLinesRequest) (*models.LineListResponse, error) {
	lines, err := s.lineRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListLines: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLines - repository error: %v", ErrInternal, err)
	}

	resp := &models.LineListResponse{Lines: make([]models.LineResponse, 0, len(lines))}
	for _, line := range lines {
		lr := models.LineResponse{Line: line}
		if line.SlotsGenerated {
			counts, err := s.slotRepo.CountFree(ctx, line.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: ListLines - failed to count free slots: %v", ErrInternal, err)
			}
			lr.FreeCounts = counts
		}
		resp.Lines = append(resp.Lines, lr)
	}

	return resp, nil
}

// ListAvailableLines получает строки расписания, доступные пациентам:
// только с созданными талонами и датой не раньше сегодняшней
func (s *Service) ListAvailableLines(ctx context.Context, req *models.ListLinesRequest) (*models.LineListResponse, error) {
	filtered := *req
	filtered.OnlyGenerated = true

	if filtered.DateFrom == nil {
		now := s.timeProvider.Now()
		filtered.DateFrom = ptr.Ptr(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))
	}

	return s.ListLines(ctx, &filtered)
}

// CancelBooking снимает бронь с талона (действие регистратуры).
// Идемпотентна: повторная отмена свободного талона успешна.
func (s *Service) CancelBooking(ctx context.Context, slotID int64) error {
	if err := s.slotRepo.Release(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("CancelBooking: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("CancelBooking: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: CancelBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelBooking: released slot id=%d", slotID)
	return nil
}

// GetPatientBookings получает талоны пациента
func (s *Service) GetPatientBookings(ctx context.Context, patientID int64) (*models.PatientBookingsResponse, error) {
	bookings, err := s.slotRepo.ListByClaimant(ctx, patientID)
	if err != nil {
		s.logger.Error("GetPatientBookings: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GetPatientBookings - repository error: %v", ErrInternal, err)
	}

	return &models.PatientBookingsResponse{Bookings: bookings}, nil
}

// validateLine проверяет плановые поля строки расписания
func (s *Service) validateLine(ctx context.Context, line *domain.ScheduleLine) error {
	if line.SpecializationID <= 0 || line.DoctorID <= 0 {
		return fmt.Errorf("%w: specialization and doctor are required", ErrInvalidInput)
	}
	if line.Room < domain.MinRoomNumber {
		return fmt.Errorf("%w: room number must be at least %d", ErrInvalidInput, domain.MinRoomNumber)
	}
	if line.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if line.IsPast(s.timeProvider.Now()) {
		return ErrDateInPast
	}

	if err := line.WindowStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid window start: %v", ErrInvalidInput, err)
	}
	if err := line.WindowEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid window end: %v", ErrInvalidInput, err)
	}
	if !line.HasValidWindow() {
		return ErrInvalidWindow
	}

	openingTime := fmt.Sprintf("%02d:00", domain.MinWindowHour)
	closingTime := fmt.Sprintf("%02d:00", domain.MaxWindowHour)
	if line.WindowStart.IsBefore(types.TimeString(openingTime)) || line.WindowEnd.IsAfter(types.TimeString(closingTime)) {
		return ErrWindowOutOfHours
	}

	if line.BudgetCount < domain.MinBudgetCount && line.CommerceCount <= 0 {
		return fmt.Errorf("%w: at least one budget or walk-in slot is required", ErrInvalidInput)
	}
	if line.BudgetCount < 0 || line.CommerceCount < 0 {
		return fmt.Errorf("%w: slot counts must not be negative", ErrInvalidInput)
	}

	if line.BudgetCount > 0 {
		windowMinutes, err := line.WindowStart.MinutesUntil(line.WindowEnd)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		// Шаг генератора усекается до целых минут: при budget_count больше
		// длины окна получились бы дубли времени
		if line.BudgetCount > windowMinutes {
			return ErrPlanTooDense
		}
	}

	if _, err := s.specRepo.GetByID(ctx, line.SpecializationID); err != nil {
		if errors.Is(err, specializationRepo.ErrNotFound) {
			return ErrSpecializationNotFound
		}
		return fmt.Errorf("%w: validateLine - failed to check specialization: %v", ErrInternal, err)
	}

	return nil
}
