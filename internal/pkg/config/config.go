package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=5000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	LogPretty       bool          `env:"LOG_PRETTY,       default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Token    TokenConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
	Tracing  TracingConfig
}

type TokenConfig struct {
	Secret       string `env:"ACCESS_TOKEN,        required"`
	IssuanceMode string `env:"TOKEN_ISSUANCE_MODE, default=open"`
	GuardPromote bool   `env:"PROMOTION_GUARDED,   default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bistroBoss"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,  default=5s"`
}

type PaymentConfig struct {
	SecretKey  string `env:"PAYMENT_TOKEN"`
	Currency   string `env:"PAYMENT_CURRENCY,    default=usd"`
	MethodType string `env:"PAYMENT_METHOD_TYPE, default=card"`
	PriceCheck bool   `env:"PRICE_CHECK,         default=true"`
}

type CheckoutConfig struct {
	Mode               string `env:"CHECKOUT_MODE,        default=saga"`
	CleanupWorkers     int    `env:"CLEANUP_WORKERS,      default=4"`
	CleanupMaxAttempts int    `env:"CLEANUP_MAX_ATTEMPTS, default=8"`
}

type TracingConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME, default=bistro-boss-ordering"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for callers that cannot continue without configuration.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}
