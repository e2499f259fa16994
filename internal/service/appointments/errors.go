package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, если запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("appointments: internal error")
)

const (
	ReasonAppointmentNotFound = "Appointment not found"
	reasonTransitionFmt       = "Cannot transition appointment from %s to %s"
)
