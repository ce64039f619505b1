package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Auth.
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	AccessTokenMinutes     int    `mapstructure:"ACCESS_TOKEN_MINUTES"`
	RefreshTokenDays       int    `mapstructure:"REFRESH_TOKEN_DAYS"`
	TOTPIssuer             string `mapstructure:"TOTP_ISSUER"`
	MaxFailedLogins        int    `mapstructure:"MAX_FAILED_LOGINS"`
	LockoutMinutes         int    `mapstructure:"LOCKOUT_MINUTES"`
	VerificationTokenHours int    `mapstructure:"VERIFICATION_TOKEN_HOURS"`

	// Rate limiting.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Scheduling. Working hours are identical every day; no per-weekday
	// variation, no holidays.
	WorkingHoursStart   string `mapstructure:"WORKING_HOURS_START"`
	WorkingHoursEnd     string `mapstructure:"WORKING_HOURS_END"`
	SlotDurationMinutes int    `mapstructure:"SLOT_DURATION_MINUTES"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// SMTP.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	PublicURL    string `mapstructure:"PUBLIC_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("ACCESS_TOKEN_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_DAYS", 7)
	viper.SetDefault("TOTP_ISSUER", "Tidywave")
	viper.SetDefault("MAX_FAILED_LOGINS", 5)
	viper.SetDefault("LOCKOUT_MINUTES", 15)
	viper.SetDefault("VERIFICATION_TOKEN_HOURS", 24)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("WORKING_HOURS_START", "10:00")
	viper.SetDefault("WORKING_HOURS_END", "19:00")
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@tidywave.local")
	viper.SetDefault("PUBLIC_URL", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
