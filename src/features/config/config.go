package config

// Config holds the application configuration.
type Config struct {
	Server   Server            `yaml:"server"`
	Logger   Logger            `yaml:"logger"`
	Cache    Cache             `yaml:"cache"`
	Fetcher  Fetcher           `yaml:"fetcher"`
	Throttle Throttle          `yaml:"throttle"`
	Sources  map[string]Source `yaml:"sources"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Cache holds the configuration for the in-memory result cache.
type Cache struct {
	TTLMinutes   int `yaml:"ttl_minutes" validate:"min=1"`
	SweepMinutes int `yaml:"sweep_minutes"`
}

// Fetcher holds the configuration shared by all outbound HTTP clients.
type Fetcher struct {
	UserAgent      string   `yaml:"user_agent"`
	TimeoutSeconds int      `yaml:"timeout_seconds" validate:"min=1"`
	Retries        int      `yaml:"retries" validate:"min=1"`
	BackoffMs      int      `yaml:"backoff_ms"`
	Proxies        []string `yaml:"proxies"`
}

// Throttle holds the configuration for inbound request limiting.
type Throttle struct {
	Max           int `yaml:"max" validate:"min=1"`
	WindowSeconds int `yaml:"window_seconds" validate:"min=1"`
}

// Source holds configuration for an individual lyrics source
type Source struct {
	Enabled     bool    `yaml:"enabled"`
	Secret      *string `yaml:"secret,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	RateLimitMs int     `yaml:"rate_limit_ms,omitempty"`
}
