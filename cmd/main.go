package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-PetCareService/internal/api"
	checkAvailabilityHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_appointment"
	detectNoShowsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/detect_no_shows"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_available_slots"
	getOwnerNoShowsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_owner_no_shows"
	getOwnerReputationHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_owner_reputation"
	getVaccinationAlertsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_vaccination_alerts"
	listOwnersHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_owners"
	markNoShowHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/mark_no_show"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment_status"
	validateBookingHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/app"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/telemetry"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-PetCareService...")
	log.Info("Configuration loaded from config.toml")

	// Трейсинг (OTLP endpoint из OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing = telemetry.Setup(cfg.Tracing.ServiceName)
		log.Info("Tracing enabled for %s", cfg.Tracing.ServiceName)
	}

	// Собираем репозитории, сервисы и use cases
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Инициализируем handlers
	h := api.Handlers{
		Availability:      checkAvailabilityHandler.NewHandler(application.Availability, log),
		Slots:             getAvailableSlotsHandler.NewHandler(application.Slots, log),
		ValidateBooking:   validateBookingHandler.NewHandler(application.ValidateBooking, log),
		CreateAppointment: createAppointmentHandler.NewHandler(application.CreateAppointment, log),
		Reschedule:        rescheduleAppointmentHandler.NewHandler(application.RescheduleAppointment, log),
		Status:            updateAppointmentStatusHandler.NewHandler(application.Appointments, log),
		NoShow:            markNoShowHandler.NewHandler(application.Tenants, application.NoShow, log),
		DetectNoShows:     detectNoShowsHandler.NewHandler(application.Tenants, application.NoShow, log),
		OwnerNoShows:      getOwnerNoShowsHandler.NewHandler(application.NoShow, log),
		OwnerReputation:   getOwnerReputationHandler.NewHandler(application.Reputation, log),
		Owners:            listOwnersHandler.NewHandler(application.NoShow, application.Reputation, log),
		Vaccinations:      getVaccinationAlertsHandler.NewHandler(application.Tenants, application.Monitor, log),
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(application.Metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api.RegisterRoutes(r, h)

	var handler http.Handler = r
	if cfg.Tracing.Enabled {
		handler = otelhttp.NewHandler(r, cfg.Tracing.ServiceName)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
