package remove_slots

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка расписания не найдена
	ErrLineNotFound = errors.New("remove_slots: schedule line not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("remove_slots: internal error")
)
