package vaccination

import "errors"

var (
	// ErrPetNotFound питомец из запроса не найден у тенанта
	ErrPetNotFound = errors.New("vaccination: pet not found")

	// ErrVaccinationRequired у питомца нет действующей вакцинации
	ErrVaccinationRequired = errors.New("vaccination: current vaccination required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("vaccination: internal error")
)
