package domain

import "github.com/google/uuid"

// BatchReport summarises one batch job run over a tenant
type BatchReport struct {
	Job      string
	TenantID uuid.UUID
	Detected int
	Applied  int
	Errors   int
}

// Add accumulates another report into r
func (r *BatchReport) Add(other BatchReport) {
	r.Detected += other.Detected
	r.Applied += other.Applied
	r.Errors += other.Errors
}
