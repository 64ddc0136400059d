package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	AppPort         string
	DBDriver        string
	DatabaseDSN     string
	RabbitMQURL     string
	InvoiceExchange string
	InvoiceQueue    string
	JWTSecret       string
	AuthRequired    bool
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFrom        string
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := FromViper(v)
	log.Printf("[config] APP_PORT=%s DB_DRIVER=%s AUTH_REQUIRED=%t events=%t mail=%t",
		cfg.AppPort, cfg.DBDriver, cfg.AuthRequired, cfg.RabbitMQURL != "", cfg.SMTPHost != "")
	return cfg
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("INVOICE_EXCHANGE", "invoices")
	v.SetDefault("INVOICE_QUEUE", "invoice_receipts")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "billing@storefront.local")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		AppPort:         v.GetString("APP_PORT"),
		DBDriver:        v.GetString("DB_DRIVER"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		InvoiceExchange: v.GetString("INVOICE_EXCHANGE"),
		InvoiceQueue:    v.GetString("INVOICE_QUEUE"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		AuthRequired:    v.GetBool("AUTH_REQUIRED"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    v.GetString("SMTP_PASSWORD"),
		MailFrom:        v.GetString("MAIL_FROM"),
	}
}
