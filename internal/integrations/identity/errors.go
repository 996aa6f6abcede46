package identity

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден у провайдера
	ErrUserNotFound = errors.New("identity client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("identity client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// identity-провайдер недоступен, отображаемые имена заменяются заглушками
	ErrServiceDegraded = errors.New("identity provider unavailable: graceful degradation applied")
)
