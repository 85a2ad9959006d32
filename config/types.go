package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig contains the GTFS static feed source
type GTFSConfig struct {
	// StaticURL is an http(s) URL or local path of a GTFS zip.
	StaticURL string `yaml:"staticURL"`
}

// DatabaseConfig contains the optional Postgres schedule source
type DatabaseConfig struct {
	// URL is a postgres:// DSN. When set it takes precedence over the zip
	// source. DATABASE_URL in the environment overrides it.
	URL string `yaml:"url"`
}

// PlannerConfig contains journey search parameters
type PlannerConfig struct {
	MaxWaitSeconds   int     `yaml:"maxWaitSeconds" validate:"gte=0"`
	NearestStopCount int     `yaml:"nearestStopCount" validate:"gte=0"`
	MaxTransfers     int     `yaml:"maxTransfers" validate:"gte=0,lte=2"`
	WalkSpeedMPM     float64 `yaml:"walkSpeedMetersPerMinute" validate:"gte=0"`
}

// MetricsConfig contains the Prometheus exposition address
type MetricsConfig struct {
	// Addr like ":9102"; empty disables the metrics server.
	Addr string `yaml:"addr"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	GTFS     GTFSConfig     `yaml:"gtfs"`
	Database DatabaseConfig `yaml:"database"`
	Planner  PlannerConfig  `yaml:"planner"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}
