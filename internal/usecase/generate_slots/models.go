package generate_slots

// Request модель запроса генерации талонов
type Request struct {
	ScheduleLineID int64
}

// Response модель результата генерации
type Response struct {
	ScheduleLineID   int64
	Created          int  // сколько талонов вставлено
	AlreadyGenerated bool // повторный вызов, генерация не выполнялась
}
