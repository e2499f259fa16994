package noshow

import "errors"

var (
	// ErrAppointmentNotFound возвращается, если запись не найдена
	ErrAppointmentNotFound = errors.New("noshow: appointment not found")

	// ErrCustomerNotFound возвращается, если клиент не найден
	ErrCustomerNotFound = errors.New("noshow: customer not found")

	// ErrAlreadyMarked возвращается при повторной отметке неявки
	ErrAlreadyMarked = errors.New("noshow: already marked as no-show")

	// ErrNotNoShow возвращается при списании штрафа с записи без неявки
	ErrNotNoShow = errors.New("noshow: appointment is not marked as no-show")

	// ErrFeeAlreadyWaived возвращается при повторном списании штрафа
	ErrFeeAlreadyWaived = errors.New("noshow: fee already waived")

	// ErrInvalidTransition возвращается, если статус записи не допускает неявку
	ErrInvalidTransition = errors.New("noshow: invalid status transition")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("noshow: internal error")
)

// Причины отказа, которые видит клиент
const (
	ReasonAppointmentNotFound = "Appointment not found"
	ReasonCustomerNotFound    = "Customer not found"
	ReasonAlreadyMarked       = "Already marked as no-show"
	ReasonNotNoShow           = "Appointment is not marked as no-show"
	ReasonFeeAlreadyWaived    = "Fee already waived"
	reasonTransitionFmt       = "Cannot transition appointment from %s to %s"
	reasonWaiveStatusFmt      = "Cannot waive fee with payment status %s"
)
