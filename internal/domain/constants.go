package domain

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02.01.2006" // DD.MM.YYYY, как в талонах регистратуры
)

// Business validation constants
const (
	MinRoomNumber = 1

	// Приемные часы поликлиники: окно приема задается целым часом
	// в интервале 07:00–21:00
	MinWindowHour = 7
	MaxWindowHour = 21

	// MinBudgetCount минимум бюджетных талонов при генерации по времени
	MinBudgetCount = 1

	// NoPatronymic значение-заглушка отчества в профиле
	NoPatronymic = "-"
)
