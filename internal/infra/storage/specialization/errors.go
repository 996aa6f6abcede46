package specialization

import "errors"

var (
	// ErrNotFound возвращается, когда специализация не найдена
	ErrNotFound = errors.New("specialization.repository: specialization not found")

	// ErrNameExists возвращается при нарушении уникальности имени
	ErrNameExists = errors.New("specialization.repository: specialization name already exists")

	// ErrHasDependents возвращается при удалении специализации,
	// на которую ссылаются строки расписания
	ErrHasDependents = errors.New("specialization.repository: specialization has dependent schedule lines")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("specialization.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("specialization.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("specialization.repository: failed to scan row")
)
