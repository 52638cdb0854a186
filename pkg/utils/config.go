package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Broker   BrokerConfig
	Session  SessionConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	CORSOrigin string
	// Location is where show times are labelled for staff.
	Location *time.Location
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BookingConfig points at the booking backend REST API.
type BookingConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BrokerConfig is optional; an empty URL disables event publishing.
type BrokerConfig struct {
	URL   string
	Queue string
}

type SessionConfig struct {
	ExpiryHours int
}

type CacheConfig struct {
	CinemaTTL time.Duration
	LayoutTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "picturetime-dashboard")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BOOKING_BASE_URL", "https://dashboard-backend.picturetime.in/api")
	viper.SetDefault("BOOKING_TIMEOUT", "15s")
	viper.SetDefault("AMQP_QUEUE", "seats.updated")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("CACHE_CINEMA_TTL", "10m")
	viper.SetDefault("CACHE_LAYOUT_TTL", "6h")

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	location, err := time.LoadLocation(viper.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("load APP_TIMEZONE: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			CORSOrigin: viper.GetString("CORS_ORIGIN"),
			Location:   location,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			BaseURL: viper.GetString("BOOKING_BASE_URL"),
			Timeout: viper.GetDuration("BOOKING_TIMEOUT"),
		},
		Broker: BrokerConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Cache: CacheConfig{
			CinemaTTL: viper.GetDuration("CACHE_CINEMA_TTL"),
			LayoutTTL: viper.GetDuration("CACHE_LAYOUT_TTL"),
		},
	}

	return config, nil
}
