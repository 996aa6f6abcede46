package registry

import "errors"

var (
	// ErrSpecializationNotFound возвращается, когда специализация не найдена
	ErrSpecializationNotFound = errors.New("specialization not found")

	// ErrSpecializationExists возвращается при дубле имени специализации
	ErrSpecializationExists = errors.New("specialization name already exists")

	// ErrSpecializationInUse возвращается при удалении специализации,
	// на которую ссылаются строки расписания
	ErrSpecializationInUse = errors.New("specialization is referenced by schedule lines")

	// ErrUserNotFound возвращается, когда identity-провайдер не знает пользователя
	ErrUserNotFound = errors.New("user not found in identity provider")

	// ErrIdentityUnavailable возвращается, когда identity-провайдер недоступен
	ErrIdentityUnavailable = errors.New("identity provider is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("registry service: internal error")
)
