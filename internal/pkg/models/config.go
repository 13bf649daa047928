package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	PayNecta PayNectaConfig
	Sweeper  SweeperConfig
	CORS     CORSConfig
	NewRelic NewRelicConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// StoreConfig selects and configures the receipt store backend.
// Driver is one of "file", "memory", "postgres" or "redis".
type StoreConfig struct {
	Driver   string
	FilePath string
}

// DatabaseConfig contains PostgreSQL connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration. An empty URL disables
// event publishing.
type NATSConfig struct {
	URL string
}

// PayNectaConfig contains the PayNecta provider contract: endpoint,
// credentials and the fixed fields carried on every initialization request.
type PayNectaConfig struct {
	BaseURL           string
	APIKey            string
	UserEmail         string
	ChannelID         string
	CallbackURL       string
	CustomerName      string
	DefaultLoanAmount string
	TimeoutSeconds    int
}

// SweeperConfig controls the release sweeper cadence and the holding period
// before a processing loan is released.
type SweeperConfig struct {
	IntervalMinutes    int
	HoldingPeriodHours int
}

// CORSConfig restricts browser access to the configured frontend origin.
type CORSConfig struct {
	AllowedOrigin string
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
