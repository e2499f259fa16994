package validate_booking

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или отключен
	ErrTenantNotFound = errors.New("validate_booking: tenant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
