package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port            string        `envconfig:"PORT"             default:":5000"`
	LogLevel        string        `envconfig:"LOG_LEVEL"        default:"info"`
	GinMode         string        `envconfig:"GIN_MODE"         default:"release"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	StoreDriver   string `envconfig:"STORE_DRIVER"     default:"mongo"`
	MongoURI      string `envconfig:"MONGODB_URI"      default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"tribalcraft"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	UploadDir      string `envconfig:"UPLOAD_DIR"       default:"uploads"`
	UploadMaxBytes int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB"      default:"0"`
	CartLockTTL   time.Duration `envconfig:"CART_LOCK_TTL" default:"5s"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"tribalcraft.events"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// LoadConfig reads an optional .env file, then the environment. Invalid configuration is fatal.
func LoadConfig(logger *logrus.Logger) *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Fatalf("Failed to process configuration from environment variables: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}

	logger.Infof("Configuration loaded: Port=%s, LogLevel=%s, StoreDriver=%s", cfg.Port, cfg.LogLevel, cfg.StoreDriver)
	if cfg.RedisAddr != "" {
		logger.Infof("Configuration loaded: Redis cart lock at %s", cfg.RedisAddr)
	}
	if len(cfg.KafkaBrokers) > 0 {
		logger.Infof("Configuration loaded: Kafka brokers %s, topic %s", strings.Join(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	}
	return &cfg
}

func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("MONGODB_URI and MONGODB_DATABASE are required for the mongo store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo, postgres or memory)", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.CartLockTTL <= 0 {
		return fmt.Errorf("CART_LOCK_TTL must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.Port != "" && !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	return nil
}
