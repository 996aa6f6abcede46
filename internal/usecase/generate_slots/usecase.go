package generate_slots

import (
	"context"
	"errors"
	"fmt"

	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	"github.com/onmarkov/polyclinic/pkg/txmanager"
)

// UseCase генератор талонов строки расписания.
// Запускается ровно один раз на строку (флаг slots_generated); повторный
// запуск является no-op.
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

// Execute генерирует пачку талонов строки расписания.
// Вставка талонов и установка флага slots_generated выполняются в одной
// сериализуемой транзакции: либо появляется вся пачка вместе с флагом,
// либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: line=%d", req.ScheduleLineID)

	resp := &Response{ScheduleLineID: req.ScheduleLineID}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		line, err := uc.lineRepo.GetByID(txCtx, req.ScheduleLineID)
		if err != nil {
			if errors.Is(err, scheduleLineRepo.ErrLineNotFound) {
				return ErrLineNotFound
			}
			return fmt.Errorf("%w: failed to get schedule line: %v", ErrInternal, err)
		}

		if line.SlotsGenerated {
			uc.logger.Info("GenerateSlots: line=%d already generated, skipping", line.ID)
			resp.AlreadyGenerated = true
			return nil
		}

		slots, err := buildSlots(line)
		if err != nil {
			return err
		}

		if err := uc.slotRepo.BulkCreate(txCtx, slots); err != nil {
			// Конфликт сериализации пробрасываем без оборачивания,
			// транзакция будет повторена менеджером
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}

		if err := uc.lineRepo.MarkGenerated(txCtx, line.ID); err != nil {
			// Конкурентная генерация успела раньше: транзакция откатится,
			// пачку вставит победитель
			if errors.Is(err, scheduleLineRepo.ErrAlreadyGenerated) || txmanager.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to mark line generated: %v", ErrInternal, err)
		}

		resp.Created = len(slots)
		return nil
	})
	if err != nil {
		// Проигрыш конкурентной генерации трактуем как no-op
		if errors.Is(err, scheduleLineRepo.ErrAlreadyGenerated) {
			uc.logger.Warn("GenerateSlots: line=%d generated concurrently", req.ScheduleLineID)
			return &Response{ScheduleLineID: req.ScheduleLineID, AlreadyGenerated: true}, nil
		}
		// Повторы внутри менеджера исчерпаны
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("GenerateSlots: line=%d serialization conflict not resolved by retries", req.ScheduleLineID)
			return nil, fmt.Errorf("%w: concurrent slot generation conflict: %v", ErrInternal, err)
		}
		uc.logger.Warn("GenerateSlots: line=%d failed: %v", req.ScheduleLineID, err)
		return nil, err
	}

	if !resp.AlreadyGenerated {
		uc.logger.Info("GenerateSlots: line=%d created %d slots", req.ScheduleLineID, resp.Created)
	}
	return resp, nil
}
