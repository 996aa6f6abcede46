package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleLineHasValidWindow(t *testing.T) {
	line := &ScheduleLine{WindowStart: "09:00", WindowEnd: "12:00"}
	assert.True(t, line.HasValidWindow())

	line.WindowEnd = "09:00"
	assert.False(t, line.HasValidWindow())

	line.WindowEnd = "08:00"
	assert.False(t, line.HasValidWindow())
}

func TestScheduleLineIsEditable(t *testing.T) {
	line := &ScheduleLine{}
	assert.True(t, line.IsEditable())

	line.SlotsGenerated = true
	assert.False(t, line.IsEditable())
}

func TestScheduleLineIsPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 13, 30, 0, 0, time.UTC)

	yesterday := &ScheduleLine{Date: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)}
	assert.True(t, yesterday.IsPast(now))

	// Сегодняшняя строка не считается прошедшей независимо от времени суток
	today := &ScheduleLine{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)}
	assert.False(t, today.IsPast(now))

	tomorrow := &ScheduleLine{Date: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)}
	assert.False(t, tomorrow.IsPast(now))
}

func TestSlotStates(t *testing.T) {
	free := &Slot{ID: 1, ScheduleLineID: 1}
	assert.True(t, free.IsFree())
	assert.False(t, free.IsTimed())
	assert.False(t, free.IsClaimedBy(7))

	claimant := int64(7)
	claimed := &Slot{ID: 2, ScheduleLineID: 1, ClaimantID: &claimant}
	assert.False(t, claimed.IsFree())
	assert.True(t, claimed.IsClaimedBy(7))
	assert.False(t, claimed.IsClaimedBy(8))
}
