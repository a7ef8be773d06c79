package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "onekart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Gateway  GatewayConfig
	Orders   OrdersConfig
	Features FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ONEKART_APP_ENV" default:"dev"`
	Port         string `envconfig:"ONEKART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ONEKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ONEKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"ONEKART_DB_DSN"`
	MaxOpenConns    int           `envconfig:"ONEKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ONEKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ONEKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ONEKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ONEKART_REDIS_URL"`
	Address      string        `envconfig:"ONEKART_REDIS_ADDR"`
	Password     string        `envconfig:"ONEKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"ONEKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ONEKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ONEKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ONEKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ONEKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ONEKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ONEKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ONEKART_JWT_ISSUER" default:"onekart"`
	ExpirationMinutes int    `envconfig:"ONEKART_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ONEKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ONEKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ONEKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ONEKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ONEKART_ARGON_KEY_LEN" default:"32"`
}

// GatewayConfig carries the payment gateway credentials. KeyID and Secret
// absent is a fatal startup condition for the payment bridge.
type GatewayConfig struct {
	BaseURL       string        `envconfig:"ONEKART_GATEWAY_BASE_URL" default:"https://api.razorpay.com"`
	KeyID         string        `envconfig:"ONEKART_GATEWAY_KEY_ID"`
	Secret        string        `envconfig:"ONEKART_GATEWAY_SECRET"`
	Currency      string        `envconfig:"ONEKART_GATEWAY_CURRENCY" default:"INR"`
	Timeout       time.Duration `envconfig:"ONEKART_GATEWAY_TIMEOUT" default:"10s"`
	CapabilityTTL time.Duration `envconfig:"ONEKART_GATEWAY_CAPABILITY_TTL" default:"15m"`
}

// Validate reports missing gateway credentials.
func (g GatewayConfig) Validate() error {
	if strings.TrimSpace(g.KeyID) == "" || strings.TrimSpace(g.Secret) == "" {
		return fmt.Errorf("gateway key id and secret are required")
	}
	return nil
}

// OrdersConfig holds the server-side pricing rule inputs.
type OrdersConfig struct {
	TaxRate               string `envconfig:"ONEKART_ORDERS_TAX_RATE" default:"0.05"`
	ShippingFee           string `envconfig:"ONEKART_ORDERS_SHIPPING_FEE" default:"50"`
	FreeShippingThreshold string `envconfig:"ONEKART_ORDERS_FREE_SHIPPING_THRESHOLD" default:"1000"`
}

type FeatureFlagsConfig struct {
	UseSQLite         bool `envconfig:"ONEKART_USE_SQLITE" default:"false"`
	AutoMigrate       bool `envconfig:"ONEKART_AUTO_MIGRATE" default:"false"`
	StrictTransitions bool `envconfig:"ONEKART_STRICT_TRANSITIONS" default:"false"`
}
