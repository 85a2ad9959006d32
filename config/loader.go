package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Planner parameter defaults, matching the published-timetable search design:
// a 10 minute wait ceiling per boarding, 20 candidate stops per endpoint, at
// most two vehicle changes, 80 m/min walking speed.
const (
	DefaultMaxWaitSeconds   = 600
	DefaultNearestStopCount = 20
	DefaultMaxTransfers     = 2
	DefaultWalkSpeedMPM     = 80.0
	DefaultPort             = 16181
)

// LoadAppConfig loads and validates the application configuration.
// A .env file is applied to the environment first (ignored if missing);
// CONFIG_PATH, DATABASE_URL and PORT override file values.
func LoadAppConfig() (AppConfig, error) {
	_ = godotenv.Load()

	paths := []string{"config.yml", "./config/config.yml"}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		paths = []string{p}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	var cfg AppConfig
	if err != nil {
		// No file is acceptable; env and defaults still apply.
		cfg = AppConfig{}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.URL = dsn
	}
	if p := os.Getenv("PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Planner); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Planner.MaxWaitSeconds == 0 {
		cfg.Planner.MaxWaitSeconds = DefaultMaxWaitSeconds
	}
	if cfg.Planner.NearestStopCount == 0 {
		cfg.Planner.NearestStopCount = DefaultNearestStopCount
	}
	if cfg.Planner.MaxTransfers == 0 {
		cfg.Planner.MaxTransfers = DefaultMaxTransfers
	}
	if cfg.Planner.WalkSpeedMPM == 0 {
		cfg.Planner.WalkSpeedMPM = DefaultWalkSpeedMPM
	}
}
