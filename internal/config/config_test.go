package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "petcare"
user = "petcare"

[scheduling]
business_start = "08:00"
business_end = "18:00"
closed_weekdays = ["sunday"]

[no_show]
grace_minutes = 20
fee_schedule = [1000, 2000]

[notifications]
provider = "noop"
`)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "08:00", cfg.Scheduling.BusinessStart)
	assert.Equal(t, 30, cfg.Scheduling.SlotStepMinutes, "defaults survive partial files")
	assert.Equal(t, 20, cfg.NoShow.GraceMinutes)
	assert.Equal(t, []int64{1000, 2000}, cfg.NoShow.FeeSchedule)
	assert.Equal(t, domain.DefaultMinBookingScore, cfg.Reputation.MinBookingScore)

	weekdays, err := cfg.Scheduling.Weekdays()
	require.NoError(t, err)
	assert.Equal(t, []domain.Weekday{domain.Sunday}, weekdays)

	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432 user=petcare password=secret dbname=petcare")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "end before start", mutate: func(c *Config) { c.Scheduling.BusinessEnd = "08:00" }},
		{name: "bad time", mutate: func(c *Config) { c.Scheduling.BusinessStart = "nine" }},
		{name: "zero step", mutate: func(c *Config) { c.Scheduling.SlotStepMinutes = 0 }},
		{name: "empty fee schedule", mutate: func(c *Config) { c.NoShow.FeeSchedule = nil }},
		{name: "threshold above 100", mutate: func(c *Config) { c.Reputation.MinBookingScore = 101 }},
		{name: "unknown weekday", mutate: func(c *Config) { c.Scheduling.ClosedWeekdays = []string{"caturday"} }},
		{name: "unknown provider", mutate: func(c *Config) { c.Notifications.Provider = "pigeon" }},
		{name: "zero alert threshold", mutate: func(c *Config) { c.Vaccination.AlertThresholds = []int{30, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoad_ShippedConfig(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default().NoShow.FeeSchedule, cfg.NoShow.FeeSchedule)
	assert.Equal(t, domain.DefaultRecoveryWindowDays, cfg.Reputation.RecoveryWindowDays)
	assert.Equal(t, domain.VaccinationAlertThresholds, cfg.Vaccination.AlertThresholds)
	assert.Equal(t, "log", cfg.Notifications.Provider)
	assert.Equal(t, 600, cfg.Batch.TimeoutSeconds)
	assert.Empty(t, cfg.Batch.PushgatewayURL)
}
