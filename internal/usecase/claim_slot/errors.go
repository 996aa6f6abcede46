package claim_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда талон не найден
	ErrSlotNotFound = errors.New("claim_slot: slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("claim_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_slot: internal error")
)
