package validation

import "errors"

// Виды отказов. Причина для клиента лежит в domain.Rejection.Reason,
// сам вид доступен через errors.Is
var (
	ErrServiceNotFound     = errors.New("validation: service not found")
	ErrServiceUnavailable  = errors.New("validation: service not bookable")
	ErrInPast              = errors.New("validation: start in the past")
	ErrInvalidDuration     = errors.New("validation: invalid duration")
	ErrTooManyPets         = errors.New("validation: too many pets")
	ErrStaffUnavailable    = errors.New("validation: staff unavailable")
	ErrResourceUnavailable = errors.New("validation: resource unavailable")
	ErrResourceRequired    = errors.New("validation: resource required")
	ErrConflict            = errors.New("validation: concurrent booking conflict")
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("validation: internal error")
