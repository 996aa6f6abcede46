package list_free_slots

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка расписания не найдена
	ErrLineNotFound = errors.New("list_free_slots: schedule line not found")

	// ErrSlotsNotGenerated возвращается для строки без созданных талонов
	ErrSlotsNotGenerated = errors.New("list_free_slots: slots are not generated for this line")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_free_slots: internal error")
)
