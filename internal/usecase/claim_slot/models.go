package claim_slot

import "github.com/onmarkov/polyclinic/internal/domain"

// Outcome исход попытки бронирования
type Outcome string

const (
	// OutcomeConfirmed талон забронирован за пациентом
	OutcomeConfirmed Outcome = "confirmed"

	// OutcomeAlreadyTaken талон занят другим пациентом
	// (в том числе проигрыш гонки за талон)
	OutcomeAlreadyTaken Outcome = "already_taken"

	// OutcomeDuplicateClaim у пациента уже есть талон этой строки расписания
	OutcomeDuplicateClaim Outcome = "duplicate_claim"
)

// Request модель запроса бронирования талона
type Request struct {
	SlotID    int64
	PatientID int64
}

// Response модель исхода бронирования
type Response struct {
	Outcome Outcome
	Message string       // человекочитаемое сообщение для подтвержденного исхода
	Slot    *domain.Slot // заполнен только для OutcomeConfirmed
}
