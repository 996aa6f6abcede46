package scheduleline

import "errors"

var (
	// ErrLineNotFound возвращается, когда строка расписания не найдена
	ErrLineNotFound = errors.New("scheduleline.repository: schedule line not found")

	// ErrLineExists возвращается при нарушении уникальности
	// (дата, специализация, врач)
	ErrLineExists = errors.New("scheduleline.repository: schedule line already exists for this date, specialization and doctor")

	// ErrLineImmutable возвращается при попытке изменить строку
	// с созданными талонами
	ErrLineImmutable = errors.New("scheduleline.repository: schedule line has generated slots and is read-only")

	// ErrAlreadyGenerated возвращается при повторной установке флага талонов
	ErrAlreadyGenerated = errors.New("scheduleline.repository: slots already generated for this line")

	// ErrHasDependents возвращается при удалении строки, на которую
	// ссылаются талоны
	ErrHasDependents = errors.New("scheduleline.repository: schedule line has dependent slots")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduleline.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduleline.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("scheduleline.repository: failed to scan row")
)
