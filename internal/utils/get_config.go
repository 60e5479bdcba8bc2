package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Server and session configuration
	AppURL       string `yaml:"APP_URL"`
	AppPort      string `yaml:"APP_PORT"`
	JWTSecret    string `yaml:"JWT_SECRET"`
	MagicLinkTTL string `yaml:"MAGIC_LINK_TTL"`
	SessionTTL   string `yaml:"SESSION_TTL"`

	// Donation form configuration
	ContactRequired *bool  `yaml:"CONTACT_REQUIRED"`
	NoticeTTL       string `yaml:"NOTICE_TTL"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

var config Config

// LoadConfig reads config.yaml, or the file named by CONFIG_PATH.
func LoadConfig() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("Error reading YAML file: %s", err)
		return err
	}

	var loaded Config
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Errorf("Error parsing YAML file: %s", err)
		return err
	}

	config = loaded
	return nil
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "APP_URL":
		return withDefault(config.AppURL, "http://localhost:3000")
	case "APP_PORT":
		return withDefault(config.AppPort, "3000")
	case "JWT_SECRET":
		return config.JWTSecret
	case "MAGIC_LINK_TTL":
		return withDefault(config.MagicLinkTTL, "15m")
	case "SESSION_TTL":
		return withDefault(config.SessionTTL, "24h")
	case "CONTACT_REQUIRED":
		if config.ContactRequired == nil || *config.ContactRequired {
			return "true"
		}
		return "false"
	case "NOTICE_TTL":
		return withDefault(config.NoticeTTL, "5s")
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	default:
		return ""
	}
}

// GetDuration parses a duration key, falling back when the value is malformed.
func GetDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(GetConfig(key))
	if err != nil || d <= 0 {
		log.Warnf("invalid duration for %s, using %s", key, fallback)
		return fallback
	}
	return d
}

func GetBool(key string) bool {
	b, err := strconv.ParseBool(GetConfig(key))
	return err == nil && b
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
