package slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("slots: service not found")

	// ErrServiceUnavailable возвращается, когда услуга неактивна или закрыта для онлайн-записи
	ErrServiceUnavailable = errors.New("slots: service is not available for booking")

	// ErrStaffNotFound возвращается, когда запрошенный сотрудник не найден
	ErrStaffNotFound = errors.New("slots: staff member not found")

	// ErrNoSlotFound возвращается, когда в горизонте поиска нет свободных слотов
	ErrNoSlotFound = errors.New("slots: no available slot found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
