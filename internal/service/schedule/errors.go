package schedule

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка расписания не найдена
	ErrLineNotFound = errors.New("schedule line not found")

	// ErrLineExists возвращается при дубле (дата, специализация, врач)
	ErrLineExists = errors.New("schedule line already exists for this date, specialization and doctor")

	// ErrLineImmutable возвращается при изменении строки с созданными талонами
	ErrLineImmutable = errors.New("schedule line has generated slots and is read-only")

	// ErrLineHasSlots возвращается при удалении строки с талонами
	ErrLineHasSlots = errors.New("schedule line has dependent slots")

	// ErrSpecializationNotFound возвращается для неизвестной специализации
	ErrSpecializationNotFound = errors.New("specialization not found")

	// ErrSlotNotFound возвращается, когда талон не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidWindow возвращается, когда окончание приема не позже начала
	ErrInvalidWindow = errors.New("reception window end must be after start")

	// ErrWindowOutOfHours возвращается, когда окно выходит за приемные часы
	ErrWindowOutOfHours = errors.New("reception window is outside of working hours")

	// ErrDateInPast возвращается при дате приема в прошлом
	ErrDateInPast = errors.New("schedule line date is in the past")

	// ErrPlanTooDense возвращается, когда бюджетных талонов больше,
	// чем минут в окне приема: шаг генератора стал бы нулевым
	ErrPlanTooDense = errors.New("budget count exceeds window length in minutes")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
