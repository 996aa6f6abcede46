package identity

// User запись пользователя у identity-провайдера.
// Сервис регистратуры трактует ID как непрозрачный стабильный идентификатор
// и не занимается аутентификацией.
type User struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
}

// ErrorResponse модель ошибки identity-провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
