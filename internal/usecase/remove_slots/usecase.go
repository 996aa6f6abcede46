package remove_slots

import (
	"context"
	"errors"
	"fmt"

	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	"github.com/onmarkov/polyclinic/pkg/txmanager"
)

// Request модель запроса удаления талонов
type Request struct {
	ScheduleLineID int64
}

// Response модель результата удаления
type Response struct {
	ScheduleLineID int64
	Removed        int64 // сколько талонов удалено
	Blocked        bool  // удаление отклонено: есть занятые талоны
	NothingToDo    bool  // талоны строки не создавались
}

// UseCase удаление пачки талонов строки расписания.
// Удаление возможно только если все талоны строки свободны.
type UseCase struct {
	lineRepo  ScheduleLineRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lineRepo ScheduleLineRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		lineRepo:  lineRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute удаляет все талоны строки расписания и сбрасывает флаг
// slots_generated, после чего строка снова редактируема.
//
// Проверка занятых талонов и удаление выполняются в одной сериализуемой
// транзакции: бронь, успевшая между проверкой и удалением, транзакцию
// не переживет тихо — иначе возможна потеря подтвержденной брони.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RemoveSlots: line=%d", req.ScheduleLineID)

	resp := &Response{ScheduleLineID: req.ScheduleLineID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		line, err := uc.lineRepo.GetByID(txCtx, req.ScheduleLineID)
		if err != nil {
			if errors.Is(err, scheduleLineRepo.ErrLineNotFound) {
				return ErrLineNotFound
			}
			return fmt.Errorf("%w: failed to get schedule line: %v", ErrInternal, err)
		}

		if !line.SlotsGenerated {
			resp.NothingToDo = true
			return nil
		}

		claimed, err := uc.slotRepo.CountClaimed(txCtx, line.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count claimed slots: %v", ErrInternal, err)
		}

		if claimed > 0 {
			uc.logger.Warn("RemoveSlots: line=%d blocked, %d claimed slots", line.ID, claimed)
			resp.Blocked = true
			return nil
		}

		removed, err := uc.slotRepo.DeleteByLine(txCtx, line.ID)
		if err != nil {
			// Конфликт сериализации пробрасываем без оборачивания,
			// транзакция будет повторена менеджером
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to delete slots: %v", ErrInternal, err)
		}

		if err := uc.lineRepo.ResetGenerated(txCtx, line.ID); err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to reset generated flag: %v", ErrInternal, err)
		}

		resp.Removed = removed
		return nil
	})
	if err != nil {
		// Повторы внутри менеджера исчерпаны
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RemoveSlots: line=%d serialization conflict not resolved by retries", req.ScheduleLineID)
			return nil, fmt.Errorf("%w: concurrent slot removal conflict: %v", ErrInternal, err)
		}
		uc.logger.Warn("RemoveSlots: line=%d failed: %v", req.ScheduleLineID, err)
		return nil, err
	}

	if !resp.Blocked && !resp.NothingToDo {
		uc.logger.Info("RemoveSlots: line=%d removed %d slots", req.ScheduleLineID, resp.Removed)
	}
	return resp, nil
}
