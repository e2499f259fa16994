package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	ServiceID uuid.UUID       `json:"serviceId"`
	StaffID   *uuid.UUID      `json:"staffId,omitempty"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start            string      `json:"start"`
	End              string      `json:"end"`
	DurationMinutes  int         `json:"durationMinutes"`
	EligibleStaffIDs []uuid.UUID `json:"eligibleStaffIds"`
}

// FromSlot конвертирует доменный слот в HTTP модель
func FromSlot(slot domain.Slot) AvailableSlot {
	staff := slot.EligibleStaffIDs
	if staff == nil {
		staff = []uuid.UUID{}
	}
	return AvailableSlot{
		Start:            slot.Start.Format(time.RFC3339),
		End:              slot.End.Format(time.RFC3339),
		DurationMinutes:  slot.DurationMinutes,
		EligibleStaffIDs: staff,
	}
}

// FromSlots конвертирует список слотов на дату в HTTP response
func FromSlots(date time.Time, serviceID uuid.UUID, staffID *uuid.UUID, slots []domain.Slot) *AvailableSlotsResponse {
	out := make([]AvailableSlot, len(slots))
	for i, slot := range slots {
		out[i] = FromSlot(slot)
	}

	return &AvailableSlotsResponse{
		Date:      date.Format(domain.DateFormat),
		ServiceID: serviceID,
		StaffID:   staffID,
		Slots:     out,
	}
}
