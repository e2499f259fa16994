package check_availability

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID        uuid.UUID `json:"id"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Available bool      `json:"available"`
}

func newResponse(id uuid.UUID, start, end time.Time, available bool) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        id,
		Start:     start.Format(time.RFC3339),
		End:       end.Format(time.RFC3339),
		Available: available,
	}
}
