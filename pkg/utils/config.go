package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Broker    BrokerConfig
	Pricing   PricingConfig
	Auth      AuthConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	Timezone       string
	Location       *time.Location
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// BrokerConfig holds the AMQP connection. An empty URL disables publishing.
type BrokerConfig struct {
	URL string
}

// PricingConfig holds the ticket prices every new sale starts with.
type PricingConfig struct {
	FullPrice decimal.Decimal
	HalfPrice decimal.Decimal
}

type AuthConfig struct {
	TokenExpiryHours int
	AdminUsername    string
	AdminPassword    string
}

type SchedulerConfig struct {
	Enabled            bool
	Timezone           string
	StockAuditInterval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-pos")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATIONS_PATH", "migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_TTL_MINUTES", 30)
	viper.SetDefault("TICKET_FULL_PRICE", "20.00")
	viper.SetDefault("TICKET_HALF_PRICE", "10.00")
	viper.SetDefault("TOKEN_EXPIRY_HOURS", 12)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("STOCK_AUDIT_MINUTES", 15)

	// .env is optional, plain environment is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	fullPrice, err := decimal.NewFromString(viper.GetString("TICKET_FULL_PRICE"))
	if err != nil {
		return nil, fmt.Errorf("parse TICKET_FULL_PRICE: %w", err)
	}
	halfPrice, err := decimal.NewFromString(viper.GetString("TICKET_HALF_PRICE"))
	if err != nil {
		return nil, fmt.Errorf("parse TICKET_HALF_PRICE: %w", err)
	}
	if fullPrice.IsNegative() || halfPrice.IsNegative() || !HasCents(fullPrice) || !HasCents(halfPrice) {
		return nil, fmt.Errorf("ticket prices must be non-negative with at most two decimal places, got %s and %s",
			fullPrice, halfPrice)
	}

	location, err := time.LoadLocation(viper.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE: %w", err)
	}

	// the scheduler runs in the app timezone unless told otherwise
	schedulerTimezone := viper.GetString("SCHEDULER_TIMEZONE")
	if schedulerTimezone == "" {
		schedulerTimezone = viper.GetString("APP_TIMEZONE")
	}

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			Timezone:       viper.GetString("APP_TIMEZONE"),
			Location:       location,
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("DB_MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
			CartTTL:  time.Duration(viper.GetInt("CART_TTL_MINUTES")) * time.Minute,
		},
		Broker: BrokerConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Pricing: PricingConfig{
			FullPrice: fullPrice,
			HalfPrice: halfPrice,
		},
		Auth: AuthConfig{
			TokenExpiryHours: viper.GetInt("TOKEN_EXPIRY_HOURS"),
			AdminUsername:    viper.GetString("ADMIN_USERNAME"),
			AdminPassword:    viper.GetString("ADMIN_PASSWORD"),
		},
		Scheduler: SchedulerConfig{
			Enabled:            viper.GetBool("SCHEDULER_ENABLED"),
			Timezone:           schedulerTimezone,
			StockAuditInterval: time.Duration(viper.GetInt("STOCK_AUDIT_MINUTES")) * time.Minute,
		},
	}

	return config, nil
}

// splitList reads a comma separated env value.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
