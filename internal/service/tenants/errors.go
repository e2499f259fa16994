package tenants

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("tenants: tenant not found")

	// ErrTenantInactive возвращается для отключенного тенанта
	ErrTenantInactive = errors.New("tenants: tenant is inactive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("tenants: internal error")
)
