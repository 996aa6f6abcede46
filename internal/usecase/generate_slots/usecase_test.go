package generate_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onmarkov/polyclinic/internal/domain"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	"github.com/onmarkov/polyclinic/pkg/txmanager"
)

type fakeLineRepo struct {
	lines map[int64]*domain.ScheduleLine
}

func (r *fakeLineRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, scheduleLineRepo.ErrLineNotFound
	}
	copied := *line
	return &copied, nil
}

func (r *fakeLineRepo) MarkGenerated(_ context.Context, id int64) error {
	line, ok := r.lines[id]
	if !ok {
		return scheduleLineRepo.ErrLineNotFound
	}
	if line.SlotsGenerated {
		return scheduleLineRepo.ErrAlreadyGenerated
	}
	line.SlotsGenerated = true
	return nil
}

type fakeSlotRepo struct {
	inserted []*domain.Slot
}

func (r *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.Slot) error {
	r.inserted = append(r.inserted, slots...)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTxManager повторяет транзакцию при конфликте сериализации,
// как это делают настоящие менеджеры
type retryingTxManager struct {
	attempts int
}

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < 3; i++ {
		m.attempts++
		err = fn(ctx)
		if !txmanager.IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

// conflictingSlotRepo проваливает первые failures вставок конфликтом сериализации
type conflictingSlotRepo struct {
	fakeSlotRepo
	failures int
}

func (r *conflictingSlotRepo) BulkCreate(ctx context.Context, slots []*domain.Slot) error {
	if r.failures > 0 {
		r.failures--
		return txmanager.ErrSerializationFailure
	}
	return r.fakeSlotRepo.BulkCreate(ctx, slots)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecuteGeneratesFullBatch(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {
			ID:            1,
			WindowStart:   "09:00",
			WindowEnd:     "12:00",
			BudgetCount:   3,
			CommerceCount: 2,
		},
	}}
	slots := &fakeSlotRepo{}
	uc := NewUseCase(lines, slots, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyGenerated)
	assert.Equal(t, 5, resp.Created)
	assert.Len(t, slots.inserted, 5)
	assert.True(t, lines.lines[1].SlotsGenerated)
}

func TestExecuteIdempotentRegeneration(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {
			ID:          1,
			WindowStart: "09:00",
			WindowEnd:   "12:00",
			BudgetCount: 3,
		},
	}}
	slots := &fakeSlotRepo{}
	uc := NewUseCase(lines, slots, fakeTxManager{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	require.False(t, first.AlreadyGenerated)

	second, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.True(t, second.AlreadyGenerated)
	assert.Zero(t, second.Created)

	// Пачка вставлена ровно один раз
	assert.Len(t, slots.inserted, 3)
}

func TestExecuteRetriesSerializationConflict(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, WindowStart: "09:00", WindowEnd: "12:00", BudgetCount: 3},
	}}
	slots := &conflictingSlotRepo{failures: 1}
	txMgr := &retryingTxManager{}
	uc := NewUseCase(lines, slots, txMgr, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 2, txMgr.attempts)
	// Повтор выполняет транзакцию заново, пачка вставлена один раз
	assert.Len(t, slots.inserted, 3)
	assert.True(t, lines.lines[1].SlotsGenerated)
}

func TestExecuteSerializationConflictExhausted(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, WindowStart: "09:00", WindowEnd: "12:00", BudgetCount: 3},
	}}
	slots := &conflictingSlotRepo{failures: 3}
	uc := NewUseCase(lines, slots, &retryingTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, slots.inserted)
}

func TestExecuteLineNotFound(t *testing.T) {
	uc := NewUseCase(&fakeLineRepo{lines: map[int64]*domain.ScheduleLine{}}, &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 9})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestExecuteInvalidWindow(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, WindowStart: "12:00", WindowEnd: "09:00", BudgetCount: 3},
	}}
	uc := NewUseCase(lines, &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
