// Package memstore содержит in-memory реализации репозиториев хранилища для тестов.
// Ошибки совпадают с ошибками SQL-репозиториев, поэтому сервисы ветвятся по ним так же.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Store общее состояние всех in-memory репозиториев
type Store struct {
	mu sync.Mutex

	tenants      map[uuid.UUID]domain.Tenant
	staff        map[uuid.UUID]domain.Staff
	resources    map[uuid.UUID]domain.Resource
	services     map[uuid.UUID]domain.Service
	owners       map[uuid.UUID]domain.Owner
	pets         map[uuid.UUID]domain.Pet
	vaccinations map[uuid.UUID]domain.VaccinationRecord
	appointments map[uuid.UUID]domain.Appointment
	payments     map[uuid.UUID]domain.Payment

	// failOn ошибки, которые должны вернуть операции по имени
	failOn map[string]error
	// failOnce ошибки, которые операция вернет только при следующем вызове
	failOnce map[string]error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		tenants:      map[uuid.UUID]domain.Tenant{},
		staff:        map[uuid.UUID]domain.Staff{},
		resources:    map[uuid.UUID]domain.Resource{},
		services:     map[uuid.UUID]domain.Service{},
		owners:       map[uuid.UUID]domain.Owner{},
		pets:         map[uuid.UUID]domain.Pet{},
		vaccinations: map[uuid.UUID]domain.VaccinationRecord{},
		appointments: map[uuid.UUID]domain.Appointment{},
		payments:     map[uuid.UUID]domain.Payment{},
		failOn:       map[string]error{},
		failOnce:     map[string]error{},
	}
}

// FailOn заставляет операцию op (например "payment.Create") возвращать err
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

// FailOnce заставляет только следующий вызов операции op вернуть err
func (s *Store) FailOnce(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOnce[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failOnce[op]; ok {
		delete(s.failOnce, op)
		return err
	}
	return s.failOn[op]
}

// Seed методы

func (s *Store) PutTenant(t domain.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
}

func (s *Store) PutStaff(st domain.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[st.ID] = st
}

func (s *Store) PutResource(r domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID] = r
}

func (s *Store) PutService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) PutOwner(o domain.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[o.ID] = o
}

func (s *Store) PutPet(p domain.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = p
}

func (s *Store) PutVaccination(v domain.VaccinationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.vaccinations[v.ID] = v
}

func (s *Store) PutAppointment(a domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.appointments[a.ID] = a
}

func (s *Store) PutPayment(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.payments[p.ID] = p
}

// Чтение состояния для проверок в тестах

func (s *Store) Owner(id uuid.UUID) domain.Owner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners[id]
}

func (s *Store) Pet(id uuid.UUID) domain.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets[id]
}

func (s *Store) Vaccination(id uuid.UUID) domain.VaccinationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vaccinations[id]
}

func (s *Store) Appointment(id uuid.UUID) domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id]
}

// AppointmentsOf возвращает все записи тенанта
func (s *Store) AppointmentsOf(tenantID uuid.UUID) []domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out
}

// PaymentsFor возвращает все платежи по записи
func (s *Store) PaymentsFor(appointmentID uuid.UUID) []domain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Payment
	for _, p := range s.payments {
		if p.AppointmentID != nil && *p.AppointmentID == appointmentID {
			out = append(out, p)
		}
	}
	return out
}

type snapshot struct {
	owners       map[uuid.UUID]domain.Owner
	pets         map[uuid.UUID]domain.Pet
	vaccinations map[uuid.UUID]domain.VaccinationRecord
	appointments map[uuid.UUID]domain.Appointment
	payments     map[uuid.UUID]domain.Payment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		owners:       cloneMap(s.owners),
		pets:         cloneMap(s.pets),
		vaccinations: cloneMap(s.vaccinations),
		appointments: cloneMap(s.appointments),
		payments:     cloneMap(s.payments),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners = snap.owners
	s.pets = snap.pets
	s.vaccinations = snap.vaccinations
	s.appointments = snap.appointments
	s.payments = snap.payments
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// TxManager транзакции поверх Store
//
// Все транзакции выполняются строго последовательно под одним мьютексом,
// что соответствует худшему случаю блокировок FOR UPDATE в PostgreSQL.
// При ошибке состояние изменяемых таблиц откатывается к снимку.
type TxManager struct {
	store *Store
	mu    sync.Mutex

	// Calls число выполненных транзакций
	Calls int
}

// NewTxManager создает менеджер транзакций для хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

type txKey struct{}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}
