package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the state of a payment record
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentProcessing        PaymentStatus = "processing"
	PaymentSucceeded         PaymentStatus = "succeeded"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentCancelled         PaymentStatus = "cancelled"
	PaymentWaived            PaymentStatus = "waived"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:           {PaymentProcessing, PaymentSucceeded, PaymentFailed, PaymentCancelled, PaymentWaived},
	PaymentProcessing:        {PaymentSucceeded, PaymentFailed},
	PaymentFailed:            {PaymentPending, PaymentWaived},
	PaymentSucceeded:         {PaymentRefunded, PaymentPartiallyRefunded},
	PaymentPartiallyRefunded: {PaymentRefunded},
	PaymentRefunded:          {},
	PaymentCancelled:         {},
	PaymentWaived:            {},
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentType distinguishes what a payment is for
type PaymentType string

const (
	PaymentTypeDeposit    PaymentType = "deposit"
	PaymentTypeFull       PaymentType = "full_payment"
	PaymentTypeNoShowFee  PaymentType = "no_show_fee"
	PaymentTypeCancelFee  PaymentType = "cancellation_fee"
	PaymentTypeAdjustment PaymentType = "adjustment"
)

// Payment is a monetary record tied to an owner and, for fees, to one appointment
type Payment struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	OwnerID       uuid.UUID
	AppointmentID *uuid.UUID
	Type          PaymentType
	Status        PaymentStatus
	AmountCents   int64
	Description   string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
