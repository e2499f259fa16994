package create_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID   uuid.UUID   // ID тенанта (из заголовка X-Tenant-ID)
	OwnerID    uuid.UUID   // ID клиента
	ServiceID  uuid.UUID   // ID услуги
	PetIDs     []uuid.UUID // Питомцы
	StaffID    *uuid.UUID  // Сотрудник (опционально)
	ResourceID *uuid.UUID  // Стол, фургон или комната (опционально)
	Start      time.Time   // Начало
	End        time.Time   // Окончание, включая буферы услуги
	Notes      *string     // Заметки
}

// Response модель ответа с созданной записью
type Response struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	OwnerID      uuid.UUID
	ServiceID    uuid.UUID
	PetIDs       []uuid.UUID
	StaffID      *uuid.UUID
	ResourceID   *uuid.UUID
	Start        time.Time
	End          time.Time
	Status       string
	DepositCents int64
	Notes        *string
	CreatedAt    time.Time
}
