package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	ServiceName string
	Env         string
	HTTPAddr    string
	GRPCAddr    string

	LogLevel  string
	LogFormat string

	JWTSecret   string
	AdminEmails []string

	// Слаг системного тенанта, который нельзя удалять и менять.
	ReservedTenantSlug string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	TenantCacheTTL time.Duration

	ReminderEnabled  bool
	ReminderCron     string
	ReminderLeadDays int

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFromNumber   string
	TwilioWhatsAppFrom string
}

// LoadEnvFile подхватывает .env, если он есть. Уже выставленные переменные не перетираются.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if fileExists(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		ServiceName: getEnv("SERVICE_NAME", "saas-store"),
		Env:         getEnv("APP_ENV", "development"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:    getEnv("GRPC_ADDR", ":50051"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminEmails: getEnvList("ADMIN_EMAILS"),

		ReservedTenantSlug: getEnv("RESERVED_TENANT_SLUG", "zo-system"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		TenantCacheTTL: getEnvDuration("TENANT_CACHE_TTL", 5*time.Minute),

		ReminderEnabled:  getEnvBool("REMINDER_ENABLED", true),
		ReminderCron:     getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderLeadDays: getEnvInt("REMINDER_LEAD_DAYS", 1),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:   getEnv("TWILIO_FROM_NUMBER", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
	}

	for i, e := range cfg.AdminEmails {
		cfg.AdminEmails[i] = strings.ToLower(e)
	}

	if cfg.ReservedTenantSlug == "" {
		return nil, fmt.Errorf("invalid app config: RESERVED_TENANT_SLUG must not be empty")
	}
	if cfg.ReminderLeadDays < 0 {
		return nil, fmt.Errorf("invalid app config: REMINDER_LEAD_DAYS must be >= 0")
	}
	if cfg.TenantCacheTTL <= 0 {
		return nil, fmt.Errorf("invalid app config: TENANT_CACHE_TTL must be positive")
	}
	if cfg.IsProduction() && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid app config: JWT_SECRET is required in production")
	}

	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// TwilioEnabled — заданы ли учётные данные для отправки сообщений.
func (c *AppConfig) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
