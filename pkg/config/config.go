package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Payment    PaymentConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	SlipFolder   string
}

type PaymentConfig struct {
	// Defaults used to seed the payment settings record on first boot.
	// Runtime values live in the settings table and are admin-editable.
	PromptPayTarget      string
	PromptPayExpireMins  int
	SweepIntervalSeconds int
	SweepBatchSize       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	expireMins := getEnvInt("PROMPTPAY_EXPIRE_MINUTES", 30)
	sweepInterval := getEnvInt("ORDER_SWEEP_INTERVAL_SECONDS", 30)
	sweepBatch := getEnvInt("ORDER_SWEEP_BATCH_SIZE", 100)

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Shirtshop API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shirtshop"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
			UploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
			SlipFolder:   getEnv("CLOUDINARY_SLIP_FOLDER", "shirtshop/slips"),
		},
		Payment: PaymentConfig{
			PromptPayTarget:      getEnv("PROMPTPAY_TARGET", ""),
			PromptPayExpireMins:  expireMins,
			SweepIntervalSeconds: sweepInterval,
			SweepBatchSize:       sweepBatch,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Payment.PromptPayTarget == "" {
		return nil, errors.New("missing promptpay target")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
