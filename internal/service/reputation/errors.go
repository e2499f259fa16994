package reputation

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиент не найден
	ErrCustomerNotFound = errors.New("reputation: customer not found")

	// ErrScoreTooLow возвращается, если рейтинг клиента ниже порога записи
	ErrScoreTooLow = errors.New("reputation: score too low")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reputation: internal error")
)

// Причины отказа, которые видит клиент
const (
	ReasonCustomerNotFound = "Customer not found"
	reasonScoreTooLowFmt   = "Reputation score too low (%d/100). Minimum required: %d"
)
