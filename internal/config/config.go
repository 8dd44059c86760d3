// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Format selects what the document generator attaches when qrbill_params
// is present: the generated SVG converted to a PDF, or the SVG as-is.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

type Config struct {
	ServerPort string

	// SMTP
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SMTPFrom    string
	SMTPTimeout time.Duration

	// Auth
	ExpectedSecret string

	// Resource roots
	TemplateDir string
	ICSDir      string

	// QR bill generator
	QRBillURL     string
	QRBillTimeout time.Duration
	QRBillFormat  Format
}

// Load reads the process environment once at startup. Values never change
// within a process lifetime, so the returned Config is shared read-only.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	cfg := &Config{
		ServerPort: getEnv("PORT", "8087"),
		SMTPHost:   os.Getenv("EMAIL_SERVER"),
		SMTPUser:   os.Getenv("EMAIL_USERNAME"),
		SMTPPass:   os.Getenv("EMAIL_PASSWORD"),
		SMTPFrom:   os.Getenv("EMAIL_FROM"),

		ExpectedSecret: os.Getenv("SECRET"),

		TemplateDir: getEnv("TEMPLATE_DIR", "templates"),
		ICSDir:      getEnv("ICS_DIR", "ics"),

		QRBillURL:    getEnv("QRBILL_URL", "https://clic.epfl.ch/qrbill-generator/"),
		QRBillFormat: Format(getEnv("QRBILL_FORMAT", string(FormatPDF))),
	}

	for name, val := range map[string]string{
		"EMAIL_SERVER":   cfg.SMTPHost,
		"EMAIL_USERNAME": cfg.SMTPUser,
		"EMAIL_PASSWORD": cfg.SMTPPass,
		"EMAIL_FROM":     cfg.SMTPFrom,
		"SECRET":         cfg.ExpectedSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("missing required environment variable %s", name)
		}
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = smtpPort

	timeoutSec, err := strconv.Atoi(getEnv("QRBILL_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid QRBILL_TIMEOUT: %w", err)
	}
	cfg.QRBillTimeout = time.Duration(timeoutSec) * time.Second

	smtpTimeoutSec, err := strconv.Atoi(getEnv("SMTP_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_TIMEOUT: %w", err)
	}
	cfg.SMTPTimeout = time.Duration(smtpTimeoutSec) * time.Second

	if cfg.QRBillFormat != FormatPDF && cfg.QRBillFormat != FormatSVG {
		return nil, fmt.Errorf("invalid QRBILL_FORMAT %q (want pdf or svg)", cfg.QRBillFormat)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
