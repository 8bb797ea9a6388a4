package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.QC.Step != time.Minute {
		t.Errorf("QC.Step = %v, want %v", cfg.QC.Step, time.Minute)
	}
	if cfg.QC.BatteryFloor != 9.0 {
		t.Errorf("QC.BatteryFloor = %v, want 9.0", cfg.QC.BatteryFloor)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration should validate, got %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("QC_STEP", "10m")
	t.Setenv("QC_BATTERY_FLOOR", "8.5")
	t.Setenv("QC_STATION_ID", "TEST01")
	t.Setenv("DB_NAME", "meteo_test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.QC.Step != 10*time.Minute {
		t.Errorf("QC.Step = %v, want 10m", cfg.QC.Step)
	}
	if cfg.QC.BatteryFloor != 8.5 {
		t.Errorf("QC.BatteryFloor = %v, want 8.5", cfg.QC.BatteryFloor)
	}
	if cfg.QC.StationID != "TEST01" {
		t.Errorf("QC.StationID = %q, want TEST01", cfg.QC.StationID)
	}
	if cfg.Database.Database != "meteo_test" {
		t.Errorf("Database.Database = %q, want meteo_test", cfg.Database.Database)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "bad server port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "bad database port", mutate: func(c *Config) { c.Database.Port = 70000 }, wantErr: true},
		{name: "non-positive step", mutate: func(c *Config) { c.QC.Step = 0 }, wantErr: true},
		{name: "non-positive battery floor", mutate: func(c *Config) { c.QC.BatteryFloor = -1 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
