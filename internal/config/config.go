// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey             string `mapstructure:"FIREBASE_WEB_API_KEY"`

	// Application Specific Configuration
	AdminEmail         string `mapstructure:"ADMIN_EMAIL"`
	ProfileEmailDomain string `mapstructure:"PROFILE_EMAIL_DOMAIN"`
	MerchantName       string `mapstructure:"MERCHANT_NAME"`
	Currency           string `mapstructure:"CURRENCY"`
	CheckoutThemeColor string `mapstructure:"CHECKOUT_THEME_COLOR"`

	// Razorpay Configuration
	RazorpayKeyID         string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `mapstructure:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `mapstructure:"RAZORPAY_WEBHOOK_SECRET"`

	// Google Pay Configuration (UPI wallet button)
	GPayEnvironment       string `mapstructure:"GPAY_ENVIRONMENT"`
	GPayGateway           string `mapstructure:"GPAY_GATEWAY"`
	GPayGatewayMerchantID string `mapstructure:"GPAY_GATEWAY_MERCHANT_ID"`
	GPayMerchantID        string `mapstructure:"GPAY_MERCHANT_ID"`
	GPayMerchantName      string `mapstructure:"GPAY_MERCHANT_NAME"`

	// Cron Jobs
	ReconcileJobSchedule string `mapstructure:"RECONCILE_JOB_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	// Firebase
	v.SetDefault("FIREBASE_PROJECT_ID", "") // Optional
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")

	// Application defaults mirror the hosted demo setup.
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("PROFILE_EMAIL_DOMAIN", "@gmail.com")
	v.SetDefault("MERCHANT_NAME", "non-profit")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("CHECKOUT_THEME_COLOR", "#1e3a8a")

	// Razorpay (demo key by default; the secret must come from the environment)
	v.SetDefault("RAZORPAY_KEY_ID", "rzp_test_XdJ18xJhFvpuOD")
	v.SetDefault("RAZORPAY_KEY_SECRET", "")
	v.SetDefault("RAZORPAY_WEBHOOK_SECRET", "")

	// Google Pay
	v.SetDefault("GPAY_ENVIRONMENT", "TEST")
	v.SetDefault("GPAY_GATEWAY", "example")
	v.SetDefault("GPAY_GATEWAY_MERCHANT_ID", "exampleMerchantId")
	v.SetDefault("GPAY_MERCHANT_ID", "12345678901234567890")
	v.SetDefault("GPAY_MERCHANT_NAME", "Demo Merchant")

	v.SetDefault("RECONCILE_JOB_SCHEDULE", "@hourly")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.FirebaseServiceAccountKeyPath) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
	}
	if strings.TrimSpace(cfg.FirebaseWebAPIKey) == "" {
		return nil, fmt.Errorf("FATAL: FIREBASE_WEB_API_KEY is not set. This is required for credential sign-in against the Identity Toolkit API")
	}

	return &cfg, nil
}
