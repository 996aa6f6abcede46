package generate_slots

import (
	"github.com/onmarkov/polyclinic/internal/domain"
	"github.com/onmarkov/polyclinic/pkg/types"
)

// buildSlotTimes вычисляет времена бюджетных талонов: count моментов,
// равномерно распределенных по окну приема с точностью до минуты.
//
// Цикл ограничен счетчиком, а не сравнением со временем окончания:
// результат всегда содержит ровно count значений, даже если последнее
// попадает на границу окна или за нее. Шаг прибавляется к предыдущему
// времени, накопленное округление до целых минут не корректируется.
func buildSlotTimes(start, end types.TimeString, count int) ([]types.TimeString, error) {
	if !end.IsAfter(start) {
		return nil, ErrInvalidWindow
	}
	if count <= 0 {
		return []types.TimeString{}, nil
	}

	windowMinutes, err := start.MinutesUntil(end)
	if err != nil {
		return nil, err
	}
	step := windowMinutes / count

	times := make([]types.TimeString, 0, count)
	t := start
	for i := 0; i < count; i++ {
		times = append(times, t)
		t, err = t.AddMinutes(step)
		if err != nil {
			return nil, err
		}
	}

	return times, nil
}

// buildSlots собирает полную пачку талонов строки расписания:
// commerceCount внеочередных талонов без времени плюс budgetCount
// талонов по времени
func buildSlots(line *domain.ScheduleLine) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0, line.CommerceCount+line.BudgetCount)

	for i := 0; i < line.CommerceCount; i++ {
		slots = append(slots, &domain.Slot{ScheduleLineID: line.ID})
	}

	if line.BudgetCount > 0 {
		times, err := buildSlotTimes(line.WindowStart, line.WindowEnd, line.BudgetCount)
		if err != nil {
			return nil, err
		}
		for _, t := range times {
			tod := t
			slots = append(slots, &domain.Slot{
				ScheduleLineID: line.ID,
				TimeOfDay:      &tod,
			})
		}
	}

	return slots, nil
}
