package generate_slots

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка расписания не найдена
	ErrLineNotFound = errors.New("generate_slots: schedule line not found")

	// ErrInvalidWindow возвращается, когда окно приема пустое
	// (окончание не позже начала). Дублирует проверку при создании строки.
	ErrInvalidWindow = errors.New("generate_slots: reception window end must be after start")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
