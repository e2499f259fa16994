package get_vaccination_alerts

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/vaccination"
)

// VaccinationsResponse HTTP response model
type VaccinationsResponse struct {
	DaysAhead    *int                  `json:"daysAhead,omitempty"`
	Vaccinations []VaccinationResponse `json:"vaccinations"`
}

// VaccinationResponse запись о прививке с питомцем и владельцем
type VaccinationResponse struct {
	RecordID         uuid.UUID  `json:"recordId"`
	PetID            uuid.UUID  `json:"petId"`
	PetName          string     `json:"petName"`
	OwnerID          *uuid.UUID `json:"ownerId,omitempty"`
	OwnerName        *string    `json:"ownerName,omitempty"`
	VaccinationType  string     `json:"vaccinationType"`
	ExpiryDate       string     `json:"expiryDate"` // YYYY-MM-DD
	DaysUntilExpiry  int        `json:"daysUntilExpiry"`
	AdministeredDate *string    `json:"administeredDate,omitempty"`
	AlertCount       int        `json:"alertCount"`
}

func newVaccinationsResponse(daysAhead *int, items []vaccination.ExpiringVaccination) *VaccinationsResponse {
	resp := &VaccinationsResponse{DaysAhead: daysAhead, Vaccinations: make([]VaccinationResponse, 0, len(items))}
	for _, e := range items {
		v := VaccinationResponse{
			RecordID:        e.Record.ID,
			PetID:           e.Pet.ID,
			PetName:         e.Pet.Name,
			VaccinationType: e.Record.Type,
			DaysUntilExpiry: e.DaysUntilExpiry,
			AlertCount:      e.Record.AlertCount,
		}
		if e.Record.ExpiryDate != nil {
			v.ExpiryDate = e.Record.ExpiryDate.Format(domain.DateFormat)
		}
		if !e.Record.AdministeredDate.IsZero() {
			administered := e.Record.AdministeredDate.Format(domain.DateFormat)
			v.AdministeredDate = &administered
		}
		if e.Owner != nil {
			id, name := e.Owner.ID, e.Owner.FullName()
			v.OwnerID, v.OwnerName = &id, &name
		}
		resp.Vaccinations = append(resp.Vaccinations, v)
	}
	return resp
}
