package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onmarkov/polyclinic/internal/domain"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	slotRepo "github.com/onmarkov/polyclinic/internal/infra/storage/slot"
	specializationRepo "github.com/onmarkov/polyclinic/internal/infra/storage/specialization"
	"github.com/onmarkov/polyclinic/internal/service/schedule/models"
)

type fakeLineRepo struct {
	lines   map[int64]*domain.ScheduleLine
	nextID  int64
	created []*domain.ScheduleLine
}

func (r *fakeLineRepo) Create(_ context.Context, line *domain.ScheduleLine) (*domain.ScheduleLine, error) {
	r.nextID++
	copied := *line
	copied.ID = r.nextID
	r.lines[copied.ID] = &copied
	r.created = append(r.created, &copied)
	return &copied, nil
}

func (r *fakeLineRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, scheduleLineRepo.ErrLineNotFound
	}
	copied := *line
	return &copied, nil
}

func (r *fakeLineRepo) List(_ context.Context, filter domain.ScheduleLineFilter) ([]*domain.ScheduleLine, error) {
	var out []*domain.ScheduleLine
	for _, line := range r.lines {
		if filter.OnlyGenerated && !line.SlotsGenerated {
			continue
		}
		copied := *line
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeLineRepo) UpdatePlan(_ context.Context, line *domain.ScheduleLine) error {
	existing, ok := r.lines[line.ID]
	if !ok {
		return scheduleLineRepo.ErrLineNotFound
	}
	if existing.SlotsGenerated {
		return scheduleLineRepo.ErrLineImmutable
	}
	copied := *line
	copied.SlotsGenerated = existing.SlotsGenerated
	r.lines[line.ID] = &copied
	return nil
}

func (r *fakeLineRepo) Delete(_ context.Context, id int64) error {
	line, ok := r.lines[id]
	if !ok {
		return scheduleLineRepo.ErrLineNotFound
	}
	if line.SlotsGenerated {
		return scheduleLineRepo.ErrHasDependents
	}
	delete(r.lines, id)
	return nil
}

type fakeSlotRepo struct {
	counts       domain.FreeSlotCounts
	released     []int64
	releaseError error
}

func (r *fakeSlotRepo) CountFree(_ context.Context, _ int64) (domain.FreeSlotCounts, error) {
	return r.counts, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, slotID int64) error {
	if r.releaseError != nil {
		return r.releaseError
	}
	r.released = append(r.released, slotID)
	return nil
}

func (r *fakeSlotRepo) ListByClaimant(_ context.Context, _ int64) ([]*domain.PatientBooking, error) {
	return nil, nil
}

type fakeSpecRepo struct {
	specs map[int64]*domain.Specialization
}

func (r *fakeSpecRepo) GetByID(_ context.Context, id int64) (*domain.Specialization, error) {
	spec, ok := r.specs[id]
	if !ok {
		return nil, specializationRepo.ErrNotFound
	}
	return spec, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeLineRepo, *fakeSlotRepo) {
	lines := &fakeLineRepo{lines: make(map[int64]*domain.ScheduleLine)}
	slots := &fakeSlotRepo{}
	specs := &fakeSpecRepo{specs: map[int64]*domain.Specialization{
		10: {ID: 10, Name: "Терапевт"},
	}}

	svc := NewService(lines, slots, specs, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
	return svc, lines, slots
}

func validLineRequest() *models.LineRequest {
	return &models.LineRequest{
		Date:             time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		SpecializationID: 10,
		DoctorID:         100,
		Room:             5,
		WindowStart:      "09:00",
		WindowEnd:        "12:00",
		BudgetCount:      3,
		CommerceCount:    2,
	}
}

func TestCreateLine(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, lines, _ := newTestService()

		created, err := svc.CreateLine(context.Background(), validLineRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Len(t, lines.created, 1)
		assert.False(t, created.SlotsGenerated)
	})

	t.Run("date in past", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.Date = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("window end before start", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.WindowStart = "12:00"
		req.WindowEnd = "09:00"

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("window out of working hours", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.WindowStart = "06:00"
		req.WindowEnd = "10:00"

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrWindowOutOfHours)

		req = validLineRequest()
		req.WindowStart = "19:00"
		req.WindowEnd = "22:00"

		_, err = svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrWindowOutOfHours)
	})

	t.Run("plan too dense", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.WindowStart = "09:00"
		req.WindowEnd = "09:30"
		req.BudgetCount = 31

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrPlanTooDense)
	})

	t.Run("unknown specialization", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.SpecializationID = 99

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrSpecializationNotFound)
	})

	t.Run("invalid room", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := validLineRequest()
		req.Room = 0

		_, err := svc.CreateLine(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateLine(t *testing.T) {
	t.Run("frozen after generation", func(t *testing.T) {
		svc, lines, _ := newTestService()
		created, err := svc.CreateLine(context.Background(), validLineRequest())
		require.NoError(t, err)

		lines.lines[created.ID].SlotsGenerated = true

		req := validLineRequest()
		req.Room = 7
		_, err = svc.UpdateLine(context.Background(), created.ID, req)
		assert.ErrorIs(t, err, ErrLineImmutable)
	})

	t.Run("success", func(t *testing.T) {
		svc, _, _ := newTestService()
		created, err := svc.CreateLine(context.Background(), validLineRequest())
		require.NoError(t, err)

		req := validLineRequest()
		req.Room = 7
		updated, err := svc.UpdateLine(context.Background(), created.ID, req)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.Room)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.UpdateLine(context.Background(), 42, validLineRequest())
		assert.ErrorIs(t, err, ErrLineNotFound)
	})
}

func TestDeleteLine(t *testing.T) {
	t.Run("blocked by dependent slots", func(t *testing.T) {
		svc, lines, _ := newTestService()
		created, err := svc.CreateLine(context.Background(), validLineRequest())
		require.NoError(t, err)

		lines.lines[created.ID].SlotsGenerated = true

		err = svc.DeleteLine(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrLineHasSlots)
	})

	t.Run("success", func(t *testing.T) {
		svc, lines, _ := newTestService()
		created, err := svc.CreateLine(context.Background(), validLineRequest())
		require.NoError(t, err)

		err = svc.DeleteLine(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Empty(t, lines.lines)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _, slots := newTestService()

		err := svc.CancelBooking(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, slots.released)
	})

	t.Run("slot not found", func(t *testing.T) {
		svc, _, slots := newTestService()
		slots.releaseError = slotRepo.ErrSlotNotFound

		err := svc.CancelBooking(context.Background(), 5)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestListAvailableLines(t *testing.T) {
	svc, lines, _ := newTestService()

	created, err := svc.CreateLine(context.Background(), validLineRequest())
	require.NoError(t, err)

	// Без талонов строка пациентам не видна
	resp, err := svc.ListAvailableLines(context.Background(), &models.ListLinesRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)

	lines.lines[created.ID].SlotsGenerated = true

	resp, err = svc.ListAvailableLines(context.Background(), &models.ListLinesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, created.ID, resp.Lines[0].Line.ID)
}
