package list_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/onmarkov/polyclinic/internal/domain"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
)

// Request модель запроса свободных талонов
type Request struct {
	ScheduleLineID int64
}

// Response модель списка свободных талонов строки расписания.
// Slots содержит только талоны по времени: внеочередные талоны без времени
// взаимозаменяемы и пациенту на выбор не предлагаются, их количество
// отражено в Counts.
type Response struct {
	Line   *domain.ScheduleLine
	Slots  []*domain.Slot
	Counts domain.FreeSlotCounts
}

// UseCase список свободных талонов строки расписания для пациента
type UseCase struct {
	lineRepo ScheduleLineRepository
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(lineRepo ScheduleLineRepository, slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		lineRepo: lineRepo,
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute возвращает свободные талоны по времени для строки расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	line, err := uc.lineRepo.GetByID(ctx, req.ScheduleLineID)
	if err != nil {
		if errors.Is(err, scheduleLineRepo.ErrLineNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("%w: failed to get schedule line: %v", ErrInternal, err)
	}

	if !line.SlotsGenerated {
		return nil, ErrSlotsNotGenerated
	}

	slots, err := uc.slotRepo.ListFreeTimed(ctx, line.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list free slots: %v", ErrInternal, err)
	}

	counts, err := uc.slotRepo.CountFree(ctx, line.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count free slots: %v", ErrInternal, err)
	}

	uc.logger.Info("ListFreeSlots: line=%d, %d free timed, %d free walk-in",
		line.ID, counts.Budget, counts.Commerce)

	return &Response{
		Line:   line,
		Slots:  slots,
		Counts: counts,
	}, nil
}
