package remove_slots

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
	lines      map[int64]*domain.ScheduleLine
	resetCalls []int64
}

func (r *fakeLineRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, scheduleLineRepo.ErrLineNotFound
	}
	copied := *line
	return &copied, nil
}

func (r *fakeLineRepo) ResetGenerated(_ context.Context, id int64) error {
	if line, ok := r.lines[id]; ok {
		line.SlotsGenerated = false
	}
	r.resetCalls = append(r.resetCalls, id)
	return nil
}

type fakeSlotRepo struct {
	claimed     int
	slotCount   int64
	deleteCalls []int64
}

func (r *fakeSlotRepo) CountClaimed(_ context.Context, _ int64) (int, error) {
	return r.claimed, nil
}

func (r *fakeSlotRepo) DeleteByLine(_ context.Context, lineID int64) (int64, error) {
	r.deleteCalls = append(r.deleteCalls, lineID)
	return r.slotCount, nil
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

// conflictingSlotRepo проваливает первые failures удалений конфликтом сериализации
type conflictingSlotRepo struct {
	fakeSlotRepo
	failures int
}

func (r *conflictingSlotRepo) DeleteByLine(ctx context.Context, lineID int64) (int64, error) {
	if r.failures > 0 {
		r.failures--
		return 0, txmanager.ErrSerializationFailure
	}
	return r.fakeSlotRepo.DeleteByLine(ctx, lineID)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(lines *fakeLineRepo, slots *fakeSlotRepo) *UseCase {
	return NewUseCase(lines, slots, fakeTxManager{}, nopLogger{})
}

func TestExecuteRemovesFreeSlots(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: true},
	}}
	slots := &fakeSlotRepo{slotCount: 5}
	uc := newTestUseCase(lines, slots)

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Blocked)
	assert.False(t, resp.NothingToDo)
	assert.Equal(t, int64(5), resp.Removed)
	assert.Equal(t, []int64{1}, slots.deleteCalls)
	assert.Equal(t, []int64{1}, lines.resetCalls)
	assert.False(t, lines.lines[1].SlotsGenerated)
}

func TestExecuteBlockedByClaimedSlot(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: true},
	}}
	slots := &fakeSlotRepo{claimed: 1, slotCount: 5}
	uc := newTestUseCase(lines, slots)

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Blocked)
	assert.Zero(t, resp.Removed)

	// Ни удаления, ни сброса флага
	assert.Empty(t, slots.deleteCalls)
	assert.Empty(t, lines.resetCalls)
	assert.True(t, lines.lines[1].SlotsGenerated)
}

func TestExecuteNothingToDo(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: false},
	}}
	slots := &fakeSlotRepo{}
	uc := newTestUseCase(lines, slots)

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.True(t, resp.NothingToDo)
	assert.Empty(t, slots.deleteCalls)
}

func TestExecuteRetriesSerializationConflict(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: true},
	}}
	slots := &conflictingSlotRepo{fakeSlotRepo: fakeSlotRepo{slotCount: 5}, failures: 1}
	txMgr := &retryingTxManager{}
	uc := NewUseCase(lines, slots, txMgr, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Removed)
	assert.Equal(t, 2, txMgr.attempts)
	assert.False(t, lines.lines[1].SlotsGenerated)
}

func TestExecuteSerializationConflictExhausted(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: true},
	}}
	slots := &conflictingSlotRepo{fakeSlotRepo: fakeSlotRepo{slotCount: 5}, failures: 3}
	uc := NewUseCase(lines, slots, &retryingTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	assert.ErrorIs(t, err, ErrInternal)
	// Флаг не сброшен, бронь не потеряна
	assert.True(t, lines.lines[1].SlotsGenerated)
	assert.Empty(t, lines.resetCalls)
}

func TestExecuteLineNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeLineRepo{lines: map[int64]*domain.ScheduleLine{}}, &fakeSlotRepo{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 42})
	assert.ErrorIs(t, err, ErrLineNotFound)
}
