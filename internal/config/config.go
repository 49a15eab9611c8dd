package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Session   SessionConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Store     StoreConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

type BackendConfig struct {
	BaseURL     string
	Timeout     time.Duration
	LegacyVerbs bool
}

type SessionConfig struct {
	// Driver is one of memory, redis or postgres.
	Driver string
	TTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	// Type is one of usb, network, spool or none.
	Type     string
	USBPath  string
	Address  string
	SpoolDir string
	// Width is the default receipt layout: 58mm, 80mm, a5 or a4.
	Width string
}

// Target returns the device path or address for the configured printer type.
func (c PrinterConfig) Target() string {
	switch c.Type {
	case "network":
		return c.Address
	case "spool":
		return c.SpoolDir
	default:
		return c.USBPath
	}
}

type StoreConfig struct {
	Name     string
	Address  string
	Phone    string
	Currency string
	Fraction string
}

type LogConfig struct {
	Level    string
	Encoding string
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	return load(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "stockdesk")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:5000/api/v1")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	v.SetDefault("BACKEND_LEGACY_VERBS", false)
	v.SetDefault("SESSION_DRIVER", "memory")
	v.SetDefault("SESSION_TTL_HOURS", 12)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "stockdesk")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Dhaka")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_SPOOL_DIR", "./spool")
	v.SetDefault("PRINTER_WIDTH", "58mm")
	v.SetDefault("STORE_NAME", "Stockdesk")
	v.SetDefault("STORE_ADDRESS", "")
	v.SetDefault("STORE_PHONE", "")
	v.SetDefault("CURRENCY_NAME", "Taka")
	v.SetDefault("CURRENCY_FRACTION", "Paisa")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL:     strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			Timeout:     time.Duration(v.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
			LegacyVerbs: v.GetBool("BACKEND_LEGACY_VERBS"),
		},
		Session: SessionConfig{
			Driver: strings.ToLower(v.GetString("SESSION_DRIVER")),
			TTL:    time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:     strings.ToLower(v.GetString("PRINTER_TYPE")),
			USBPath:  v.GetString("PRINTER_USB_PATH"),
			Address:  v.GetString("PRINTER_ADDRESS"),
			SpoolDir: v.GetString("PRINTER_SPOOL_DIR"),
			Width:    strings.ToLower(v.GetString("PRINTER_WIDTH")),
		},
		Store: StoreConfig{
			Name:     v.GetString("STORE_NAME"),
			Address:  v.GetString("STORE_ADDRESS"),
			Phone:    v.GetString("STORE_PHONE"),
			Currency: v.GetString("CURRENCY_NAME"),
			Fraction: v.GetString("CURRENCY_FRACTION"),
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
	}
}

// splitList reads comma separated env values such as "a, b,c".
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
