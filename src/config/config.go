package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	STORE_POSTGRES = "postgres"
	STORE_MONGO    = "mongo"

	MAIL_SMTP  = "smtp"
	MAIL_SES   = "ses"
	MAIL_QUEUE = "queue"
)

type Config struct {
	APIEnv          string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	AppHost         string
	MaintenanceMode bool
	LogDir          string

	StoreDriver string
	Database    DatabaseConfig
	MongoURI    string
	MongoDB     string

	RedisURL      string
	PlaceCacheTTL time.Duration

	JWTSecret []byte
	JWTTTL    time.Duration

	Mail MailConfig

	Places PlacesConfig

	// PaymentBaseURL is prefixed to the booking id to build the customer-facing payment page.
	PaymentBaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type MailConfig struct {
	Transport       string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	From            string
	FromName        string
	OperatorMailbox string
	Queue           string
}

type PlacesConfig struct {
	APIKey        string
	PhotoMaxWidth int
	Timeout       time.Duration
	Concurrency   int
	MarkFailures  bool
}

// LoadConfig reads the process environment once; everything downstream receives the struct.
func LoadConfig() (*Config, error) {
	if getEnv("API_ENV", "local") == "local" {
		godotenv.Load()
	}

	cfg := &Config{
		APIEnv:          getEnv("API_ENV", "local"),
		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		AppHost:         getEnv("APP_HOST", ""),
		MaintenanceMode: getEnvAsBool("MAINTENANCE_MODE", false),
		LogDir:          getEnv("LOG_DIR", "logs"),

		StoreDriver: getEnv("STORE_DRIVER", STORE_POSTGRES),
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Name:     getEnv("DATABASE_NAME", "bookings"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			TimeZone: getEnv("DATABASE_TIMEZONE", "UTC"),
		},
		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "bookings"),

		RedisURL:      getEnv("REDIS_HOST", ""),
		PlaceCacheTTL: time.Duration(getEnvAsInt("PLACE_CACHE_TTL", 3600)) * time.Second,

		JWTSecret: []byte(getEnv("JWT_SECRET", "")),
		JWTTTL:    time.Duration(getEnvAsInt("JWT_TTL", 24)) * time.Hour,

		Mail: MailConfig{
			Transport:       getEnv("MAIL_TRANSPORT", MAIL_SMTP),
			SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername:    getEnv("SMTP_USERNAME", ""),
			SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
			From:            getEnv("SMTP_FROM", ""),
			FromName:        getEnv("SMTP_FROM_NAME", "Bookings"),
			OperatorMailbox: getEnv("OPERATOR_MAILBOX", getEnv("SMTP_FROM", "")),
			Queue:           getEnv("EMAIL_QUEUE", "EmailsToSend"),
		},

		Places: PlacesConfig{
			APIKey:        getEnv("GAPI_API_KEY", ""),
			PhotoMaxWidth: getEnvAsInt("PLACES_PHOTO_MAX_WIDTH", 400),
			Timeout:       time.Duration(getEnvAsInt("PLACES_TIMEOUT", 5)) * time.Second,
			Concurrency:   getEnvAsInt("PLACES_CONCURRENCY", 8),
			MarkFailures:  getEnvAsBool("PLACES_MARK_FAILURES", true),
		},

		PaymentBaseURL: getEnv("PAYMENT_BASE_URL", "https://user-event.vercel.app/payment/"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case STORE_POSTGRES, STORE_MONGO:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Mail.Transport {
	case MAIL_SMTP, MAIL_SES, MAIL_QUEUE:
	default:
		return fmt.Errorf("unsupported MAIL_TRANSPORT %q", c.Mail.Transport)
	}
	if c.Places.Concurrency < 1 {
		c.Places.Concurrency = 1
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.APIEnv == "production"
}

func (c *Config) GetDSN() string {
	d := c.Database
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
