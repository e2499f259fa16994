package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	ownerRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/owner"
	paymentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/payment"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	resourceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/resource"
	serviceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/staff"
	tenantRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/tenant"
)

// Tenants in-memory репозиторий тенантов
type Tenants struct{ s *Store }

func (s *Store) TenantRepo() *Tenants { return &Tenants{s: s} }

func (r *Tenants) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tenant.GetByID"); err != nil {
		return nil, err
	}
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return &t, nil
}

func (r *Tenants) ListActive(context.Context) ([]*domain.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("tenant.ListActive"); err != nil {
		return nil, err
	}
	out := make([]*domain.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		if t.IsActive {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// Staff in-memory репозиторий сотрудников
type Staff struct{ s *Store }

func (s *Store) StaffRepo() *Staff { return &Staff{s: s} }

func (r *Staff) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.staff[id]
	if !ok || st.TenantID != tenantID {
		return nil, staffRepo.ErrStaffNotFound
	}
	return &st, nil
}

func (r *Staff) ListBookable(_ context.Context, tenantID uuid.UUID) ([]*domain.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Staff, 0)
	for _, st := range r.s.staff {
		if st.TenantID == tenantID && st.CanTakeBookings() {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// Resources in-memory репозиторий ресурсов
type Resources struct{ s *Store }

func (s *Store) ResourceRepo() *Resources { return &Resources{s: s} }

func (r *Resources) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resources[id]
	if !ok || res.TenantID != tenantID {
		return nil, resourceRepo.ErrResourceNotFound
	}
	return &res, nil
}

// Services in-memory репозиторий услуг
type Services struct{ s *Store }

func (s *Store) ServiceRepo() *Services { return &Services{s: s} }

func (r *Services) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.TenantID != tenantID {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &svc, nil
}

// Owners in-memory репозиторий клиентов
type Owners struct{ s *Store }

func (s *Store) OwnerRepo() *Owners { return &Owners{s: s} }

func (r *Owners) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.owners[id]
	if !ok || o.TenantID != tenantID {
		return nil, ownerRepo.ErrOwnerNotFound
	}
	return &o, nil
}

func (r *Owners) ListRecoveryCandidates(_ context.Context, tenantID uuid.UUID, updatedBefore time.Time) ([]*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Owner, 0)
	for _, o := range r.s.owners {
		if o.TenantID != tenantID || o.ReputationScore >= domain.ReputationMax {
			continue
		}
		if o.LastReputationUpdate != nil && !o.LastReputationUpdate.Before(updatedBefore) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *Owners) ListByMinNoShows(_ context.Context, tenantID uuid.UUID, minNoShows int) ([]*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("owner.ListByMinNoShows"); err != nil {
		return nil, err
	}
	out := make([]*domain.Owner, 0)
	for _, o := range r.s.owners {
		if o.TenantID == tenantID && o.NoShowCount >= minNoShows {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NoShowCount != out[j].NoShowCount {
			return out[i].NoShowCount > out[j].NoShowCount
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *Owners) ListByScoreRange(_ context.Context, tenantID uuid.UUID, lo, hi int) ([]*domain.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Owner, 0)
	for _, o := range r.s.owners {
		if o.TenantID == tenantID && o.ReputationScore >= lo && o.ReputationScore <= hi {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReputationScore != out[j].ReputationScore {
			return out[i].ReputationScore > out[j].ReputationScore
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *Owners) UpdateReputation(_ context.Context, o *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("owner.UpdateReputation"); err != nil {
		return err
	}
	if _, ok := r.s.owners[o.ID]; !ok {
		return ownerRepo.ErrOwnerNotFound
	}
	r.s.owners[o.ID] = *o
	return nil
}

// Pets in-memory репозиторий питомцев и вакцинаций
type Pets struct{ s *Store }

func (s *Store) PetRepo() *Pets { return &Pets{s: s} }

func (r *Pets) GetByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Pet, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.pets[id]; ok && p.TenantID == tenantID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *Pets) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Pet, 0)
	for _, p := range r.s.pets {
		if p.TenantID == tenantID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *Pets) UpdateVaccinationStatus(_ context.Context, tenantID, petID uuid.UUID, status domain.VaccinationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("pet.UpdateVaccinationStatus"); err != nil {
		return err
	}
	p, ok := r.s.pets[petID]
	if !ok || p.TenantID != tenantID {
		return petRepo.ErrPetNotFound
	}
	p.VaccinationStatus = status
	r.s.pets[petID] = p
	return nil
}

func (r *Pets) ListVaccinations(_ context.Context, tenantID uuid.UUID, petIDs []uuid.UUID, types []string) ([]*domain.VaccinationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wantPet := make(map[uuid.UUID]bool, len(petIDs))
	for _, id := range petIDs {
		wantPet[id] = true
	}
	wantType := make(map[string]bool, len(types))
	for _, t := range types {
		wantType[t] = true
	}

	out := make([]*domain.VaccinationRecord, 0)
	for _, v := range r.s.vaccinations {
		if v.TenantID != tenantID || !wantPet[v.PetID] {
			continue
		}
		if len(types) > 0 && !wantType[v.Type] {
			continue
		}
		v := v
		out = append(out, &v)
	}
	return out, nil
}

func (r *Pets) ListVaccinationsByTenant(_ context.Context, tenantID uuid.UUID) ([]*domain.VaccinationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.VaccinationRecord, 0)
	for _, v := range r.s.vaccinations {
		if v.TenantID == tenantID {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *Pets) ListVaccinationsExpiring(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]*domain.VaccinationRecord, error) {
	return r.listByExpiry("pet.ListVaccinationsExpiring", tenantID, func(exp time.Time) bool {
		return !exp.Before(from) && !exp.After(to)
	})
}

func (r *Pets) ListExpiredVaccinations(_ context.Context, tenantID uuid.UUID, before time.Time) ([]*domain.VaccinationRecord, error) {
	return r.listByExpiry("pet.ListExpiredVaccinations", tenantID, func(exp time.Time) bool {
		return exp.Before(before)
	})
}

func (r *Pets) listByExpiry(op string, tenantID uuid.UUID, match func(time.Time) bool) ([]*domain.VaccinationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}
	out := make([]*domain.VaccinationRecord, 0)
	for _, v := range r.s.vaccinations {
		if v.TenantID != tenantID || v.ExpiryDate == nil || !match(*v.ExpiryDate) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(*out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
		}
		return out[i].PetID.String() < out[j].PetID.String()
	})
	return out, nil
}

func (r *Pets) MarkAlertSent(_ context.Context, tenantID, recordID uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("pet.MarkAlertSent"); err != nil {
		return err
	}
	v, ok := r.s.vaccinations[recordID]
	if !ok || v.TenantID != tenantID {
		return petRepo.ErrRecordNotFound
	}
	v.AlertCount++
	v.LastAlertSentAt = &at
	r.s.vaccinations[recordID] = v
	return nil
}

func (r *Pets) UpdateRecordStatus(_ context.Context, tenantID, recordID uuid.UUID, status domain.VaccinationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("pet.UpdateRecordStatus"); err != nil {
		return err
	}
	v, ok := r.s.vaccinations[recordID]
	if !ok || v.TenantID != tenantID {
		return petRepo.ErrRecordNotFound
	}
	v.Status = status
	r.s.vaccinations[recordID] = v
	return nil
}

// Payments in-memory репозиторий платежей
type Payments struct{ s *Store }

func (s *Store) PaymentRepo() *Payments { return &Payments{s: s} }

func (r *Payments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payment.Create"); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.payments[p.ID] = *p
	return p, nil
}

func (r *Payments) GetByAppointment(_ context.Context, tenantID, appointmentID uuid.UUID, paymentType domain.PaymentType) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.TenantID == tenantID && p.Type == paymentType && p.AppointmentID != nil && *p.AppointmentID == appointmentID {
			p := p
			return &p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (r *Payments) UpdateStatus(_ context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r *Payments) FeeTotals(_ context.Context, tenantID, ownerID uuid.UUID) (*domain.FeeTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var totals domain.FeeTotals
	for _, p := range r.s.payments {
		if p.TenantID != tenantID || p.OwnerID != ownerID || p.Type != domain.PaymentTypeNoShowFee {
			continue
		}
		if p.Status == domain.PaymentCancelled || p.Status == domain.PaymentWaived {
			continue
		}
		totals.ChargedCents += p.AmountCents
		if p.Status == domain.PaymentPending || p.Status == domain.PaymentFailed {
			totals.UnpaidCents += p.AmountCents
		}
	}
	return &totals, nil
}

// Appointments in-memory репозиторий записей
type Appointments struct{ s *Store }

func (s *Store) AppointmentRepo() *Appointments { return &Appointments{s: s} }

func (r *Appointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("appointment.Create"); err != nil {
		return nil, err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.s.appointments[a.ID] = *a
	return a, nil
}

func (r *Appointments) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.TenantID != tenantID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *Appointments) ListOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("appointment.ListOverlapping"); err != nil {
		return nil, err
	}

	staff := make(map[uuid.UUID]bool, len(filter.StaffIDs))
	for _, id := range filter.StaffIDs {
		staff[id] = true
	}

	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.TenantID != filter.TenantID || !a.IsLive() || !a.Window().Overlaps(filter.Window) {
			continue
		}
		if len(staff) > 0 && (a.StaffID == nil || !staff[*a.StaffID]) {
			continue
		}
		if filter.ResourceID != nil && (a.ResourceID == nil || *a.ResourceID != *filter.ResourceID) {
			continue
		}
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.Before(out[j].ScheduledStart) })
	return out, nil
}

func (r *Appointments) ListNoShowCandidates(_ context.Context, tenantID uuid.UUID, cutoff time.Time) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.TenantID != tenantID || a.IsNoShow || a.ArrivedAt != nil {
			continue
		}
		if a.Status != domain.AppointmentPending && a.Status != domain.AppointmentConfirmed {
			continue
		}
		if !a.ScheduledStart.Before(cutoff) {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.Before(out[j].ScheduledStart) })
	return out, nil
}

func (r *Appointments) UpdateSchedule(_ context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appointments[a.ID]
	if !ok || stored.TenantID != a.TenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.ScheduledStart = a.ScheduledStart
	stored.ScheduledEnd = a.ScheduledEnd
	stored.StaffID = a.StaffID
	stored.ResourceID = a.ResourceID
	r.s.appointments[a.ID] = stored
	return nil
}

func (r *Appointments) UpdateStatus(_ context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appointments[a.ID]
	if !ok || stored.TenantID != a.TenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.Status = a.Status
	stored.ArrivedAt = a.ArrivedAt
	stored.CancelledAt = a.CancelledAt
	stored.CancellationReason = a.CancellationReason
	stored.CancelledByCustomer = a.CancelledByCustomer
	r.s.appointments[a.ID] = stored
	return nil
}

func (r *Appointments) MarkNoShow(_ context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appointments[a.ID]
	if !ok || stored.TenantID != a.TenantID || stored.IsNoShow {
		return appointmentRepo.ErrNotUpdated
	}
	stored.IsNoShow = true
	stored.Status = domain.AppointmentNoShow
	stored.NoShowMarkedAt = a.NoShowMarkedAt
	stored.NoShowFeeCharged = a.NoShowFeeCharged
	r.s.appointments[a.ID] = stored
	return nil
}

func (r *Appointments) SetNoShowFee(_ context.Context, tenantID, id uuid.UUID, feeCents int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appointments[id]
	if !ok || stored.TenantID != tenantID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.NoShowFeeCharged = feeCents
	r.s.appointments[id] = stored
	return nil
}

func (r *Appointments) OwnerStats(_ context.Context, tenantID, ownerID uuid.UUID) (*domain.OwnerAppointmentStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stats domain.OwnerAppointmentStats
	for _, a := range r.s.appointments {
		if a.TenantID != tenantID || a.OwnerID != ownerID {
			continue
		}
		stats.Total++
		if a.Status == domain.AppointmentCompleted {
			stats.Completed++
		}
		if a.IsNoShow {
			stats.NoShows++
			if stats.LastNoShowAt == nil || a.ScheduledStart.After(*stats.LastNoShowAt) {
				start := a.ScheduledStart
				stats.LastNoShowAt = &start
			}
		}
	}
	return &stats, nil
}

func (r *Appointments) ListNoShowsByOwner(_ context.Context, tenantID, ownerID uuid.UUID, limit int) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.TenantID == tenantID && a.OwnerID == ownerID && a.IsNoShow {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.After(out[j].ScheduledStart) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Appointments) CountNoShowsScheduledSince(_ context.Context, tenantID, ownerID uuid.UUID, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("appointment.CountNoShowsScheduledSince"); err != nil {
		return 0, err
	}
	count := 0
	for _, a := range r.s.appointments {
		if a.TenantID == tenantID && a.OwnerID == ownerID && a.IsNoShow && !a.ScheduledStart.Before(since) {
			count++
		}
	}
	return count, nil
}
