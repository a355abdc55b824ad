package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL     string `envconfig:"DATABASE_URL"     required:"true"`
	Port            string `envconfig:"PORT"             default:":8080"`
	LogLevel        string `envconfig:"LOG_LEVEL"        default:"info"`
	MigrationsPath  string `envconfig:"MIGRATIONS_PATH"  default:"./migrations"`
	RedisAddr       string `envconfig:"REDIS_ADDR"       default:""`
	AMQPURL         string `envconfig:"AMQP_URL"         default:""`
	DirectoryPath   string `envconfig:"DIRECTORY_PATH"   default:"./data/umkm.json"`
	DirectoryURL    string `envconfig:"DIRECTORY_URL"    default:""`
	SessionTTLHours int    `envconfig:"SESSION_TTL_HOURS" default:"168"`
	CartTTLMinutes  int    `envconfig:"CART_TTL_MINUTES" default:"120"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: Port=%s, LogLevel=%s", config.Port, config.LogLevel)
		if config.DatabaseURL == "" {
			logger.Fatal("Configuration error: DATABASE_URL is not set")
		}
		if config.RedisAddr == "" {
			logger.Info("REDIS_ADDR not set, carts will be kept in process memory")
		}
		if config.AMQPURL == "" {
			logger.Info("AMQP_URL not set, order events will not be published to a broker")
		}
	})
	return &config
}
