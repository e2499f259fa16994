package create_appointment

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или отключен
	ErrTenantNotFound = errors.New("create_appointment: tenant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
