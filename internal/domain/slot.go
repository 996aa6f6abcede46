package domain

import "github.com/onmarkov/polyclinic/pkg/types"

// Slot represents one bookable unit generated from a schedule line.
// A timed slot carries a time of day ("budget" slot); an untimed slot
// is a fungible walk-in ("commerce") unit. A slot is either free or
// held by exactly one patient.
type Slot struct {
	ID             int64
	ScheduleLineID int64
	TimeOfDay      *types.TimeString // nil = untimed walk-in unit
	ClaimantID     *int64            // nil = free
}

// IsTimed returns true for budget slots with a fixed time of day.
func (s *Slot) IsTimed() bool {
	return s.TimeOfDay != nil
}

// IsFree returns true if no patient holds the slot.
func (s *Slot) IsFree() bool {
	return s.ClaimantID == nil
}

// IsClaimedBy reports whether the slot is held by the given patient.
func (s *Slot) IsClaimedBy(patientID int64) bool {
	return s.ClaimantID != nil && *s.ClaimantID == patientID
}

// FreeSlotCounts количество свободных талонов строки расписания по видам
type FreeSlotCounts struct {
	Budget   int // свободные талоны по времени
	Commerce int // свободные талоны без времени
}

// PatientBooking талон пациента вместе с данными строки расписания,
// read model для списка "мои бронирования"
type PatientBooking struct {
	Slot               Slot
	Line               ScheduleLine
	SpecializationName string
}
