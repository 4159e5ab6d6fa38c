package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Admin  AdminConfig  `yaml:"admin"`
	JWT    JWTConfig    `yaml:"jwt"`
	Email  EmailConfig  `yaml:"email"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Host        string   `yaml:"host"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// AdminConfig holds the single statically configured admin identity.
// There is no multi-admin support.
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Secret   string `yaml:"secret"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Expiry string `yaml:"expiry"`
}

type EmailConfig struct {
	MailerSend MailerSendConfig `yaml:"mailersend"`
	Resend     ResendConfig     `yaml:"resend"`
}

type MailerSendConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type ResendConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
}

var (
	AppConfig *Config
	loadOnce  sync.Once
)

func LoadConfig() error {
	// Try to find config file in different locations
	configPaths := []string{
		"secret/app.yaml",
		"app.yaml",
		"config/app.yaml",
		"./app.yaml",
	}

	var configPath string
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			configPath = path
			break
		}
	}

	if configPath == "" {
		return fmt.Errorf("config file not found in any of the expected locations: %v", configPaths)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", configPath, err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %v", err)
	}

	applyEnvOverrides(config)
	setDefaults(config)

	AppConfig = config
	return nil
}

// applyEnvOverrides lets deploy-time secrets win over anything committed in
// YAML. Credentials are process-wide immutable configuration loaded at startup.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("MONGO_URI"); v != "" {
		config.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		config.Mongo.Database = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		config.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		config.Admin.Password = v
	}
	if v := os.Getenv("ADMIN_SECRET"); v != "" {
		config.Admin.Secret = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWT.Secret = v
	}
	if v := os.Getenv("MAILERSEND_API_KEY"); v != "" {
		config.Email.MailerSend.APIKey = v
		config.Email.MailerSend.Enabled = true
	}
	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		config.Email.Resend.APIKey = v
		config.Email.Resend.Enabled = true
	}
}

func setDefaults(config *Config) {
	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if len(config.Server.CORSOrigins) == 0 {
		config.Server.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Mongo defaults
	if config.Mongo.URI == "" {
		config.Mongo.URI = "mongodb://localhost:27017"
	}
	if config.Mongo.Database == "" {
		config.Mongo.Database = "csrippers"
	}

	// JWT defaults
	if config.JWT.Secret == "" {
		config.JWT.Secret = "csrippers-jwt-secret-change-in-production"
	}
	if config.JWT.Expiry == "" {
		config.JWT.Expiry = "24h"
	}

	// Email defaults
	if config.Email.MailerSend.FromEmail == "" {
		config.Email.MailerSend.FromEmail = "noreply@csrippers.tech"
	}
	if config.Email.MailerSend.FromName == "" {
		config.Email.MailerSend.FromName = "CS Rippers"
	}
	if config.Email.Resend.FromEmail == "" {
		config.Email.Resend.FromEmail = "noreply@csrippers.tech"
	}
}

func GetConfig() *Config {
	// main loads config at startup; the lazy path exists for callers that
	// arrive first, and must assign AppConfig exactly once.
	loadOnce.Do(func() {
		if AppConfig != nil {
			return
		}
		if err := LoadConfig(); err != nil {
			config := &Config{}
			applyEnvOverrides(config)
			setDefaults(config)
			AppConfig = config
		}
	})
	return AppConfig
}
