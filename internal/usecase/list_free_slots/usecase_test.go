package list_free_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onmarkov/polyclinic/internal/domain"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	"github.com/onmarkov/polyclinic/pkg/types"
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

type fakeSlotRepo struct {
	free   []*domain.Slot
	counts domain.FreeSlotCounts
}

func (r *fakeSlotRepo) ListFreeTimed(_ context.Context, _ int64) ([]*domain.Slot, error) {
	return r.free, nil
}

func (r *fakeSlotRepo) CountFree(_ context.Context, _ int64) (domain.FreeSlotCounts, error) {
	return r.counts, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func timeOfDay(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func TestExecuteListsFreeTimedSlots(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: true},
	}}
	slots := &fakeSlotRepo{
		free: []*domain.Slot{
			{ID: 1, ScheduleLineID: 1, TimeOfDay: timeOfDay("09:00")},
			{ID: 2, ScheduleLineID: 1, TimeOfDay: timeOfDay("10:00")},
		},
		counts: domain.FreeSlotCounts{Budget: 2, Commerce: 1},
	}
	uc := NewUseCase(lines, slots, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, 2, resp.Counts.Budget)
	assert.Equal(t, 1, resp.Counts.Commerce)
	assert.Equal(t, int64(1), resp.Line.ID)
}

func TestExecuteLineNotFound(t *testing.T) {
	uc := NewUseCase(&fakeLineRepo{lines: map[int64]*domain.ScheduleLine{}}, &fakeSlotRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 9})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestExecuteSlotsNotGenerated(t *testing.T) {
	lines := &fakeLineRepo{lines: map[int64]*domain.ScheduleLine{
		1: {ID: 1, SlotsGenerated: false},
	}}
	uc := NewUseCase(lines, &fakeSlotRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ScheduleLineID: 1})
	assert.ErrorIs(t, err, ErrSlotsNotGenerated)
}
