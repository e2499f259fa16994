package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/m04kA/SMC-PetCareService/internal/app"
	"github.com/m04kA/SMC-PetCareService/internal/batch"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	"github.com/m04kA/SMC-PetCareService/internal/service/noshow"
	"github.com/m04kA/SMC-PetCareService/internal/service/reputation"
	"github.com/m04kA/SMC-PetCareService/internal/service/vaccination"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/telemetry"
)

// Запуск по внешнему расписанию:
//
//	vaccination         ежедневно 06:15
//	vaccination-alerts  ежедневно 06:20
//	noshow              ежедневно 06:30
//	reputation          по воскресеньям 00:00
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	job := flag.String("job", "", "job to run: noshow | reputation | vaccination | vaccination-alerts")
	timeout := flag.Duration("timeout", 0, "overall job timeout (defaults to batch.timeout_seconds)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *timeout == 0 {
		*timeout = time.Duration(cfg.Batch.TimeoutSeconds) * time.Second
	}

	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing = telemetry.Setup(cfg.Tracing.ServiceName + "-batch")
	}

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application: %v", err)
	}

	runner := batch.NewRunner(application.Tenants, *timeout, application.Metrics, log)
	runner.Register(noshow.JobName, application.NoShow.ProcessTenant)
	runner.Register(reputation.JobName, application.Reputation.ApplyRecovery)
	runner.Register(vaccination.JobName, application.Vaccination.RefreshStatuses)
	runner.Register(vaccination.AlertsJobName, application.Monitor.SendExpiryAlerts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	report, runErr := runner.Run(ctx, *job)
	stop()

	if cfg.Metrics.Enabled && cfg.Batch.PushgatewayURL != "" {
		if err := push.New(cfg.Batch.PushgatewayURL, cfg.Metrics.ServiceName+"_batch").
			Gatherer(prometheus.DefaultGatherer).
			Grouping("job_name", *job).
			Push(); err != nil {
			log.Warn("Failed to push metrics: %v", err)
		}
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := shutdownTracing(flushCtx); err != nil {
		log.Warn("Failed to flush traces: %v", err)
	}
	cancel()
	application.Close()

	if runErr != nil {
		log.Error("Batch %s failed: %v", *job, runErr)
		os.Exit(1)
	}
	log.Info("Batch %s done: detected=%d applied=%d errors=%d", *job, report.Detected, report.Applied, report.Errors)
}
