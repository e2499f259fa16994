package appointments

import "github.com/m04kA/SMC-PetCareService/internal/domain"

// CancelRequest параметры отмены записи
type CancelRequest struct {
	ByCustomer bool
	Reason     string
}

// Result запись после смены статуса
// LateCancellation выставляется, если клиент отменил запись позже чем за 24 часа
type Result struct {
	Appointment      *domain.Appointment
	LateCancellation bool
}
