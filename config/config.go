package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL    string
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	JwtSecret string
	JwtExpiry time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	GSTPercent     float64
	OTPTTL         time.Duration
	OTPMaxAttempts int

	UploadDir string
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = strings.Split(ao, ",")
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("SMTP_PORT must be a number")
		}
		smtpPort = p
	}

	gstPercent := 16.0
	if v := os.Getenv("GST_PERCENT"); v != "" {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("GST_PERCENT must be a number")
		}
		gstPercent = g
	}

	otpTTL := 5 * time.Minute
	if v := os.Getenv("OTP_TTL_MINUTES"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("OTP_TTL_MINUTES must be a number")
		}
		otpTTL = time.Duration(m) * time.Minute
	}

	otpMaxAttempts := 3
	if v := os.Getenv("OTP_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("OTP_MAX_ATTEMPTS must be a number")
		}
		otpMaxAttempts = n
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return &Config{
		DatabaseURL:    databaseURL,
		Port:           port,
		Environment:    environment,
		LogLevel:       logLevel,
		AllowedOrigins: allowedOrigins,
		JwtSecret:      jwtSecret,
		JwtExpiry:      24 * time.Hour,
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       smtpPort,
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		GSTPercent:     gstPercent,
		OTPTTL:         otpTTL,
		OTPMaxAttempts: otpMaxAttempts,
		UploadDir:      uploadDir,
	}, nil
}
