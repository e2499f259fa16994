package detect_no_shows

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// DetectResponse HTTP response model
type DetectResponse struct {
	TenantID   uuid.UUID   `json:"tenantId"`
	DryRun     bool        `json:"dryRun"`
	Detected   int         `json:"detected"`
	Applied    int         `json:"applied"`
	Errors     int         `json:"errors"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidate запись, подходящая под неявку
type Candidate struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Start         string    `json:"start"`
	Status        string    `json:"status"`
}

// FromCandidates конвертирует найденные записи в HTTP response (dry run)
func FromCandidates(tenantID uuid.UUID, appts []*domain.Appointment) *DetectResponse {
	candidates := make([]Candidate, len(appts))
	for i, a := range appts {
		candidates[i] = Candidate{
			AppointmentID: a.ID,
			OwnerID:       a.OwnerID,
			Start:         a.ScheduledStart.Format(time.RFC3339),
			Status:        string(a.Status),
		}
	}
	return &DetectResponse{
		TenantID:   tenantID,
		DryRun:     true,
		Detected:   len(appts),
		Candidates: candidates,
	}
}

// FromReport конвертирует отчет обработки в HTTP response
func FromReport(tenantID uuid.UUID, report domain.BatchReport) *DetectResponse {
	return &DetectResponse{
		TenantID: tenantID,
		Detected: report.Detected,
		Applied:  report.Applied,
		Errors:   report.Errors,
	}
}
