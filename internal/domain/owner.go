package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a pet owner (the customer).
// ReputationScore is a cache of CalculateReputationScore over the counters
// and is rewritten on every counter change.
type Owner struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	FirstName string
	LastName  string
	Phone     *string
	SMSOptIn  bool

	ReputationScore           int
	NoShowCount               int
	LateCancellationCount     int
	CompletedAppointmentCount int
	RecoveryPoints            int
	LastReputationUpdate      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last"
func (o *Owner) FullName() string {
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// DerivedReputationScore recomputes the score from the counters
func (o *Owner) DerivedReputationScore() int {
	return CalculateReputationScore(o.NoShowCount, o.LateCancellationCount, o.CompletedAppointmentCount, o.RecoveryPoints)
}

// RecoveryGrant returns the recovery points needed to lift the derived score to target
func (o *Owner) RecoveryGrant(target int) int {
	raw := RawReputationScore(o.NoShowCount, o.LateCancellationCount, o.CompletedAppointmentCount, o.RecoveryPoints)
	return target - raw
}

// RefreshReputation rewrites the cached score from the counters
func (o *Owner) RefreshReputation(now time.Time) {
	o.ReputationScore = o.DerivedReputationScore()
	o.LastReputationUpdate = &now
}

// CanReceiveSMS returns true if the owner opted in and has a phone number
func (o *Owner) CanReceiveSMS() bool {
	return o.SMSOptIn && o.Phone != nil && *o.Phone != ""
}
