package domain

import (
	"time"

	"github.com/onmarkov/polyclinic/pkg/types"
)

// ScheduleLine represents one planned appointment session:
// a doctor of a given specialization receiving patients in a room
// on a given date within a time window.
type ScheduleLine struct {
	ID               int64
	Date             time.Time // date only, no clock part
	SpecializationID int64
	DoctorID         int64
	Room             int
	WindowStart      types.TimeString
	WindowEnd        types.TimeString
	BudgetCount      int // timed slots to generate
	CommerceCount    int // untimed walk-in slots to generate
	SlotsGenerated   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidWindow reports whether the reception window is non-empty.
func (l *ScheduleLine) HasValidWindow() bool {
	return l.WindowEnd.IsAfter(l.WindowStart)
}

// IsEditable reports whether plan fields may still be changed.
// Once slots are generated the window and counts are frozen until
// the slot batch is removed.
func (l *ScheduleLine) IsEditable() bool {
	return !l.SlotsGenerated
}

// IsPast reports whether the session date is before today.
func (l *ScheduleLine) IsPast(now time.Time) bool {
	date := time.Date(l.Date.Year(), l.Date.Month(), l.Date.Day(), 0, 0, 0, 0, l.Date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(today)
}

// ScheduleLineFilter фильтр списка строк расписания
type ScheduleLineFilter struct {
	DateFrom         *time.Time // строки с датой не раньше указанной
	SpecializationID *int64
	DoctorID         *int64
	OnlyGenerated    bool // только строки с созданными талонами
}
