package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration, loaded once at startup and
// passed explicitly into the modules that need it.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr string

	Twilio   TwilioConfig
	WhatsApp WhatsAppConfig

	// RecipientNumber is the fixed number every submission summary is
	// delivered to, regardless of provider.
	RecipientNumber string
}

// TwilioConfig is the credential triple for the Twilio WhatsApp channel.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Configured reports whether the full credential set is present.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// WhatsAppConfig is the credential pair for the WhatsApp Business
// Cloud API channel.
type WhatsAppConfig struct {
	Token         string
	PhoneNumberID string
}

func (c WhatsAppConfig) Configured() bool {
	return c.Token != "" && c.PhoneNumberID != ""
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "formbridge"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "5000"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "formbridge"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBPath:            getenv("DATABASE_PATH", "form_submissions.db"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		RedisAddr: strings.TrimSpace(getenv("REDIS_ADDR", "")),

		Twilio: TwilioConfig{
			AccountSID: strings.TrimSpace(getenv("TWILIO_ACCOUNT_SID", "")),
			AuthToken:  strings.TrimSpace(getenv("TWILIO_AUTH_TOKEN", "")),
			FromNumber: strings.TrimSpace(getenv("TWILIO_PHONE_NUMBER", "")),
		},
		WhatsApp: WhatsAppConfig{
			Token:         strings.TrimSpace(getenv("WHATSAPP_BUSINESS_TOKEN", "")),
			PhoneNumberID: strings.TrimSpace(getenv("WHATSAPP_PHONE_NUMBER_ID", "")),
		},
		RecipientNumber: strings.TrimSpace(getenv("WHATSAPP_RECIPIENT_NUMBER", "")),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
