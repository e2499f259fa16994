package create_appointment

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if len(req.PetIDs) == 0 {
		return fmt.Errorf("%w: at least one pet is required", ErrInvalidInput)
	}

	// Один питомец не может попасть в запись дважды
	seen := make(map[uuid.UUID]struct{}, len(req.PetIDs))
	for _, id := range req.PetIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate pet %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	return nil
}
