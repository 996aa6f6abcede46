package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда талон не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotTaken возвращается, когда талон уже забронирован другим пациентом.
	// Это штатный исход проигравшего гонку за талон.
	ErrSlotTaken = errors.New("slot.repository: slot already claimed")

	// ErrDuplicateClaim возвращается, когда пациент уже держит талон
	// этой же строки расписания (частичный уникальный индекс по
	// (schedule_line_id, claimant_id))
	ErrDuplicateClaim = errors.New("slot.repository: patient already holds a slot of this schedule line")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
