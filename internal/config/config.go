package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Billing   BillingConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	// Path is the database file for the sqlite driver.
	Path string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
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
	// KOT printer feeds the kitchen; Bill printer feeds the counter.
	KOTType    string
	KOTUSBPath string
	KOTAddress string

	BillType    string
	BillUSBPath string
	BillAddress string

	PaperWidth int // characters per line: 32 for 58mm, 48 for 80mm
}

// BillingConfig carries the thresholds the billing and table screens apply.
// Per-outlet settings may override the timeout and discount limit.
type BillingConfig struct {
	PrintedTimeout    time.Duration // printed bill unpaid this long -> needs attention
	StaffDiscountPct  float64       // percentage discounts above this need an admin
	TablePollInterval time.Duration // table monitor re-derivation interval
	UPIVPA            string        // payee address embedded in bill QR codes
}

type LogConfig struct {
	Level    string
	FilePath string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "restropos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "3001")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "restropos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_PATH", "./storage/restropos.db")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("KOT_PRINTER_TYPE", "none")
	viper.SetDefault("KOT_PRINTER_USB_PATH", "")
	viper.SetDefault("KOT_PRINTER_ADDRESS", "")
	viper.SetDefault("BILL_PRINTER_TYPE", "none")
	viper.SetDefault("BILL_PRINTER_USB_PATH", "")
	viper.SetDefault("BILL_PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_PAPER_WIDTH", 48)
	viper.SetDefault("BILLING_PRINTED_TIMEOUT_MINUTES", 10)
	viper.SetDefault("BILLING_STAFF_DISCOUNT_PCT", 20)
	viper.SetDefault("BILLING_TABLE_POLL_SECONDS", 60)
	viper.SetDefault("BILLING_UPI_VPA", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE_PATH", "./storage/logs/restropos.log")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Path:     viper.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			KOTType:     viper.GetString("KOT_PRINTER_TYPE"),
			KOTUSBPath:  viper.GetString("KOT_PRINTER_USB_PATH"),
			KOTAddress:  viper.GetString("KOT_PRINTER_ADDRESS"),
			BillType:    viper.GetString("BILL_PRINTER_TYPE"),
			BillUSBPath: viper.GetString("BILL_PRINTER_USB_PATH"),
			BillAddress: viper.GetString("BILL_PRINTER_ADDRESS"),
			PaperWidth:  viper.GetInt("PRINTER_PAPER_WIDTH"),
		},
		Billing: BillingConfig{
			PrintedTimeout:    time.Duration(viper.GetInt("BILLING_PRINTED_TIMEOUT_MINUTES")) * time.Minute,
			StaffDiscountPct:  viper.GetFloat64("BILLING_STAFF_DISCOUNT_PCT"),
			TablePollInterval: time.Duration(viper.GetInt("BILLING_TABLE_POLL_SECONDS")) * time.Second,
			UPIVPA:            viper.GetString("BILLING_UPI_VPA"),
		},
		Log: LogConfig{
			Level:    viper.GetString("LOG_LEVEL"),
			FilePath: viper.GetString("LOG_FILE_PATH"),
		},
	}
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
