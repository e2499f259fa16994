package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

// appointmentTransitions lists every legal status change.
// Terminal states have no outgoing edges.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted:  {},
	AppointmentCancelled:  {},
	AppointmentNoShow:     {},
}

// LiveStatuses are the statuses that still block a calendar
var LiveStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentInProgress,
}

// ParseAppointmentStatus validates a raw status value
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if _, ok := appointmentTransitions[status]; !ok {
		return "", fmt.Errorf("domain: unknown appointment status %q", s)
	}
	return status, nil
}

// IsLive returns true for pending, confirmed and in_progress
func (s AppointmentStatus) IsLive() bool {
	return s == AppointmentPending || s == AppointmentConfirmed || s == AppointmentInProgress
}

// IsTerminal returns true for completed, cancelled and no_show
func (s AppointmentStatus) IsTerminal() bool {
	next, ok := appointmentTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LiveStatusStrings returns LiveStatuses as plain strings for SQL filters
func LiveStatusStrings() []string {
	out := make([]string, len(LiveStatuses))
	for i, s := range LiveStatuses {
		out[i] = string(s)
	}
	return out
}

// Appointment is a booking of one service for one or more pets
type Appointment struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	OwnerID    uuid.UUID
	PetIDs     []uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID
	ResourceID *uuid.UUID

	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         AppointmentStatus

	IsNoShow         bool
	ArrivedAt        *time.Time
	NoShowMarkedAt   *time.Time
	NoShowFeeCharged int64 // cents
	DepositCents     int64

	CancelledAt         *time.Time
	CancellationReason  *string
	CancelledByCustomer bool

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the reserved half-open interval
func (a *Appointment) Window() Interval {
	return Interval{Start: a.ScheduledStart, End: a.ScheduledEnd}
}

// IsLive returns true if the appointment still blocks its staff and resource
func (a *Appointment) IsLive() bool {
	return a.Status.IsLive()
}

// HasArrived returns true once the customer checked in
func (a *Appointment) HasArrived() bool {
	return a.ArrivedAt != nil
}

// IsLateCancellation reports whether cancelling at now falls inside the late window before start
func (a *Appointment) IsLateCancellation(now time.Time) bool {
	return a.ScheduledStart.Sub(now) < LateCancellationWindow
}
