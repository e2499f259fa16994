// Package app собирает репозитории, сервисы и use cases из конфигурации.
// Используется HTTP сервером и batch раннером.
package app

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	ownerRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/owner"
	paymentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/payment"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	resourceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/resource"
	serviceRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/staff"
	tenantRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/sms"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
	"github.com/m04kA/SMC-PetCareService/internal/service/slots"
	"github.com/m04kA/SMC-PetCareService/internal/service/tenants"
	"github.com/m04kA/SMC-PetCareService/internal/service/vaccination"
	"github.com/m04kA/SMC-PetCareService/internal/service/validation"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	rescheduleAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
	validateBookingUC "github.com/m04kA/SMC-PetCareService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-PetCareService/pkg/clock"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
)

// App набор собранных зависимостей
type App struct {
	Metrics *metrics.Metrics

	Tenants      *tenants.Service
	Availability *availability.Checker
	Slots        *slots.Service
	Vaccination  *vaccination.Gate
	Monitor      *vaccination.Monitor
	NoShow       *noshow.Service
	Reputation   *reputation.Service
	Appointments *appointments.Service

	CreateAppointment     *createAppointmentUC.UseCase
	RescheduleAppointment *rescheduleAppointmentUC.UseCase
	ValidateBooking       *validateBookingUC.UseCase

	db            *sql.DB
	stopMetricsCh chan struct{}
}

// New подключается к БД и собирает сервисы
// Метрики создаются только при metrics.enabled; nil *metrics.Metrics безопасен
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{stopMetricsCh: make(chan struct{})}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	a.db = db
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, a.Metrics, cfg.Metrics.ServiceName, a.stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	timeProvider := clock.Real{}

	// Репозитории
	var (
		tenantRepository      = tenantRepo.NewRepository(wrappedDB)
		ownerRepository       = ownerRepo.NewRepository(wrappedDB)
		petRepository         = petRepo.NewRepository(wrappedDB)
		staffRepository       = staffRepo.NewRepository(wrappedDB)
		resourceRepository    = resourceRepo.NewRepository(wrappedDB)
		serviceRepository     = serviceRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		paymentRepository     = paymentRepo.NewRepository(wrappedDB)
	)

	// Интеграции
	smsSender, err := sms.New(cfg.Notifications, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info("SMS provider: %s", cfg.Notifications.Provider)

	// Сервисы
	defaults, err := tenantDefaults(cfg.Scheduling)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Tenants = tenants.NewService(tenantRepository, defaults, log)
	a.Availability = availability.NewChecker(appointmentRepository, staffRepository, resourceRepository, a.Tenants, log)
	a.Slots = slots.NewService(a.Tenants, serviceRepository, staffRepository, appointmentRepository,
		timeProvider, cfg.Scheduling.SearchHorizonDays, log)
	a.Vaccination = vaccination.NewGate(petRepository, timeProvider, log)
	a.Monitor = vaccination.NewMonitor(petRepository, ownerRepository, smsSender, timeProvider,
		cfg.Vaccination.AlertThresholds, log)

	validator := validation.NewValidator(serviceRepository, a.Vaccination, a.Availability, timeProvider,
		cfg.Scheduling.DurationToleranceMinutes, a.Metrics, log)

	a.Reputation = reputation.NewService(ownerRepository, appointmentRepository, txMgr, timeProvider,
		reputation.Settings{
			MinBookingScore:    cfg.Reputation.MinBookingScore,
			RecoveryWindowDays: cfg.Reputation.RecoveryWindowDays,
			RecoveryBonus:      cfg.Reputation.RecoveryBonus,
		}, a.Metrics, log)

	a.NoShow = noshow.NewService(appointmentRepository, ownerRepository, paymentRepository, txMgr, smsSender, timeProvider,
		noshow.Settings{
			GraceMinutes: cfg.NoShow.GraceMinutes,
			FeeEnabled:   cfg.NoShow.FeeEnabled,
			FeeSchedule:  cfg.NoShow.FeeSchedule,
		}, a.Metrics, log)

	a.Appointments = appointments.NewService(appointmentRepository, a.Reputation, txMgr, timeProvider, log)

	// Use cases
	a.CreateAppointment = createAppointmentUC.NewUseCase(appointmentRepository, a.Tenants, a.Reputation, validator, txMgr, a.Metrics, log)
	a.RescheduleAppointment = rescheduleAppointmentUC.NewUseCase(appointmentRepository, a.Tenants, validator, txMgr, log)
	a.ValidateBooking = validateBookingUC.NewUseCase(a.Tenants, validator, log)

	return a, nil
}

// Close останавливает сбор метрик пула и закрывает соединение с БД
func (a *App) Close() {
	select {
	case <-a.stopMetricsCh:
	default:
		close(a.stopMetricsCh)
	}
	if a.db != nil {
		a.db.Close()
	}
}

func tenantDefaults(cfg config.SchedulingConfig) (tenants.Defaults, error) {
	start, err := types.NewTimeStringFromString(cfg.BusinessStart)
	if err != nil {
		return tenants.Defaults{}, err
	}
	end, err := types.NewTimeStringFromString(cfg.BusinessEnd)
	if err != nil {
		return tenants.Defaults{}, err
	}
	closed, err := cfg.Weekdays()
	if err != nil {
		return tenants.Defaults{}, err
	}
	return tenants.Defaults{
		BusinessStart:   start,
		BusinessEnd:     end,
		SlotStepMinutes: cfg.SlotStepMinutes,
		ClosedWeekdays:  closed,
	}, nil
}
