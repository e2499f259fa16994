package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
)

// BookingRejectionStatus выбирает HTTP статус для отказа в записи
// Занятость сотрудника или ресурса отдается как 409, остальные нарушения правил как 422
func BookingRejectionStatus(err error) int {
	switch {
	case errors.Is(err, validation.ErrConflict),
		errors.Is(err, validation.ErrStaffUnavailable),
		errors.Is(err, validation.ErrResourceUnavailable):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
