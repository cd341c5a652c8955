package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`
	Issuer         string `yaml:"issuer"`
	AccessTTL      string `yaml:"access_ttl"`
	RefreshTTL     string `yaml:"refresh_ttl"`
}

type VerificationConfig struct {
	CodeLength     int    `yaml:"code_length"`
	CodeTTL        string `yaml:"code_ttl"`
	ResetKeyLength int    `yaml:"reset_key_length"`
	ResetTTL       string `yaml:"reset_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CookieConfig struct {
	RefreshTokenName string `yaml:"refresh_token_name"`
	Secure           bool   `yaml:"secure"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	Cookie       CookieConfig       `yaml:"cookie"`
}

// Config is the flattened runtime configuration with durations parsed and the
// JWT keypair material loaded.
type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTPrivateKeyPEM []byte
	JWTPublicKeyPEM  []byte
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	CodeLength     int
	CodeTTL        time.Duration
	ResetKeyLength int
	ResetTTL       time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	RefreshCookieName string
	CookieSecure      bool
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.Verification.CodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Verification.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset key TTL: %w", err)
	}

	privateKey, err := os.ReadFile(env("JWT_PRIVATE_KEY_PATH", configFile.JWT.PrivateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read JWT private key: %w", err)
	}

	publicKey, err := os.ReadFile(env("JWT_PUBLIC_KEY_PATH", configFile.JWT.PublicKeyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read JWT public key: %w", err)
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	cfg := &Config{
		Port:    env("PORT", strconv.Itoa(configFile.App.Port)),
		GinMode: env("GIN_MODE", configFile.App.GinMode),

		DSN: env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       redisDB,

		JWTPrivateKeyPEM: privateKey,
		JWTPublicKeyPEM:  publicKey,
		JWTIssuer:        env("JWT_ISSUER", configFile.JWT.Issuer),
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,

		CodeLength:     configFile.Verification.CodeLength,
		CodeTTL:        codeTTL,
		ResetKeyLength: configFile.Verification.ResetKeyLength,
		ResetTTL:       resetTTL,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),

		RefreshCookieName: configFile.Cookie.RefreshTokenName,
		CookieSecure:      configFile.Cookie.Secure,
	}

	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	if cfg.ResetKeyLength <= 0 {
		cfg.ResetKeyLength = 64
	}
	if cfg.RefreshCookieName == "" {
		cfg.RefreshCookieName = "refresh_token"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var configFile ConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &configFile, nil
}
