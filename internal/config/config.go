package config

import (
	"log"
	"strings"
	"time"

	"github.com/sangkips/servicecenter-api/pkg/notify"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	WhatsApp  WhatsAppConfig
	Invoice   InvoiceConfig
	Reminder  ReminderConfig
	Bootstrap BootstrapConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
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
	RequestsPerSecond float64
	Burst             int
}

type WhatsAppConfig struct {
	APIURL          string
	APIKey          string
	Timeout         time.Duration
	InvoiceTemplate string
}

type InvoiceConfig struct {
	Prefix         string
	DefaultGSTRate float64
}

type ReminderConfig struct {
	Schedule string // cron spec with seconds; empty disables the job
	Template string
	Timezone string
}

// PrinterConfig selects the counter receipt printer and the shop block
// printed on receipts
type PrinterConfig struct {
	Type        string // usb, network or none
	USBPath     string
	Address     string
	Width       int
	Timeout     time.Duration
	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopGSTIN   string
}

// BootstrapConfig optionally seeds the first owner account
type BootstrapConfig struct {
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "servicecenter-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "servicecenter")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_SQLITE_PATH", "servicecenter.db")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 168)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 720)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("WHATSAPP_API_URL", "https://api.whatsapp.com")
	viper.SetDefault("WHATSAPP_API_KEY", "")
	viper.SetDefault("WHATSAPP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("WHATSAPP_INVOICE_TEMPLATE", notify.DefaultInvoiceTemplate)
	viper.SetDefault("INVOICE_PREFIX", "INV")
	viper.SetDefault("INVOICE_DEFAULT_GST_RATE", 18)
	viper.SetDefault("REMINDER_SCHEDULE", "0 0 9 * * *")
	viper.SetDefault("REMINDER_TEMPLATE", notify.DefaultReminderTemplate)
	viper.SetDefault("REMINDER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("PRINTER_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SHOP_NAME", "Vehicle Service Center")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
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
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:          viper.GetString("WHATSAPP_API_URL"),
			APIKey:          viper.GetString("WHATSAPP_API_KEY"),
			Timeout:         time.Duration(viper.GetInt("WHATSAPP_TIMEOUT_SECONDS")) * time.Second,
			InvoiceTemplate: unescapeNewlines(viper.GetString("WHATSAPP_INVOICE_TEMPLATE")),
		},
		Invoice: InvoiceConfig{
			Prefix:         viper.GetString("INVOICE_PREFIX"),
			DefaultGSTRate: viper.GetFloat64("INVOICE_DEFAULT_GST_RATE"),
		},
		Reminder: ReminderConfig{
			Schedule: viper.GetString("REMINDER_SCHEDULE"),
			Template: unescapeNewlines(viper.GetString("REMINDER_TEMPLATE")),
			Timezone: viper.GetString("REMINDER_TIMEZONE"),
		},
		Bootstrap: BootstrapConfig{
			OwnerName:     viper.GetString("OWNER_NAME"),
			OwnerEmail:    viper.GetString("OWNER_EMAIL"),
			OwnerPassword: viper.GetString("OWNER_PASSWORD"),
		},
		Printer: PrinterConfig{
			Type:        strings.ToLower(viper.GetString("PRINTER_TYPE")),
			USBPath:     viper.GetString("PRINTER_USB_PATH"),
			Address:     viper.GetString("PRINTER_ADDRESS"),
			Width:       viper.GetInt("PRINTER_WIDTH"),
			Timeout:     time.Duration(viper.GetInt("PRINTER_TIMEOUT_SECONDS")) * time.Second,
			ShopName:    viper.GetString("SHOP_NAME"),
			ShopAddress: viper.GetString("SHOP_ADDRESS"),
			ShopPhone:   viper.GetString("SHOP_PHONE"),
			ShopGSTIN:   viper.GetString("SHOP_GSTIN"),
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

// .env files cannot hold real newlines, so templates use a literal \n
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
