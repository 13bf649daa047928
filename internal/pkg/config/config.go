package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/swiftloan/disburser/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "loan-disburser")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 3000)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 0)

	// Receipt store config
	configs.Store.Driver = GetEnv("STORE_DRIVER", "file")
	configs.Store.FilePath = GetEnv("STORE_FILE_PATH", "data/receipts.json")

	// Database config (postgres driver only)
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config (redis driver only)
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// PayNecta provider config
	configs.PayNecta.BaseURL = GetEnv("PAYNECTA_BASE_URL", "https://paynecta.co.ke/api/v1")
	configs.PayNecta.APIKey = GetEnv("PAYNECTA_API_KEY", "")
	configs.PayNecta.UserEmail = GetEnv("PAYNECTA_USER_EMAIL", "")
	configs.PayNecta.ChannelID = GetEnv("PAYNECTA_CHANNEL_ID", "000174")
	configs.PayNecta.CallbackURL = GetEnv("PAYNECTA_CALLBACK_URL", "https://paynecta.onrender.com/callback")
	configs.PayNecta.CustomerName = GetEnv("PAYNECTA_CUSTOMER_NAME", "Swift Applicant")
	configs.PayNecta.DefaultLoanAmount = GetEnv("PAYNECTA_DEFAULT_LOAN_AMOUNT", "50000")
	configs.PayNecta.TimeoutSeconds = GetEnvAsInt("PAYNECTA_TIMEOUT_SECONDS", 30)

	// Release sweeper config
	configs.Sweeper.IntervalMinutes = GetEnvAsInt("SWEEPER_INTERVAL_MINUTES", 5)
	configs.Sweeper.HoldingPeriodHours = GetEnvAsInt("SWEEPER_HOLDING_PERIOD_HOURS", 24)

	// CORS config
	configs.CORS.AllowedOrigin = GetEnv("CORS_ALLOWED_ORIGIN", "https://test-vlkt.onrender.com")

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "loan-disburser")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
