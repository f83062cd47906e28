package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// JWTPublicKey is the PEM encoded RSA key verifying caller tokens; the subject claim is the caller address
	JWTPublicKey string `mapstructure:"jwt_public_key"`
	// APIKeys are trusted service keys that act on behalf of the address in the X-On-Behalf-Of header.
	// A key without a scope may act for any account, the administrator included.
	APIKeys []string `mapstructure:"api_keys"`
	// APIKeyScopes restrict individual keys to a fixed set of accounts
	APIKeyScopes []APIKeyScope `mapstructure:"api_key_scopes"`
}

// APIKeyScope binds an API key to the accounts it may act for
type APIKeyScope struct {
	Key      string   `mapstructure:"key"`
	Accounts []string `mapstructure:"accounts"`
}

// AccountsByKey indexes the scopes by API key
func (c AuthConfig) AccountsByKey() map[string][]string {
	if len(c.APIKeyScopes) == 0 {
		return nil
	}
	scopes := make(map[string][]string, len(c.APIKeyScopes))
	for _, scope := range c.APIKeyScopes {
		scopes[scope.Key] = append(scopes[scope.Key], scope.Accounts...)
	}
	return scopes
}

// RegistryConfig holds the registry roles and the account denylist
type RegistryConfig struct {
	// Administrator is written once at first start; a stored administrator always wins
	Administrator string `mapstructure:"administrator"`
	// DisputeResolver is the initial dispute resolver, defaults to the administrator
	DisputeResolver string `mapstructure:"dispute_resolver"`
	DenylistPath    string `mapstructure:"denylist_path"`
}

// PaymentConfig holds the payment collaborator configuration.
// An empty GatewayURL keeps royalties as internal balance credits only.
type PaymentConfig struct {
	GatewayURL string        `mapstructure:"gateway_url"`
	Secret     string        `mapstructure:"secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the per-caller request rate limit
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// WebhookConfig holds webhook delivery configuration
type WebhookConfig struct {
	WorkerPoolSize  int           `mapstructure:"worker_pool_size"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Registry   RegistryConfig  `mapstructure:"registry"`
	Payment    PaymentConfig   `mapstructure:"payment"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// EventNotifierConfig holds configuration for event-notifier
type EventNotifierConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Webhook    WebhookConfig  `mapstructure:"webhook"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.connection_name", "ip-registry-api")
	v.SetDefault("payment.timeout", "30s")
	v.SetDefault("payment.max_retries", 3)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.burst", 20)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if config.Registry.Administrator == "" {
		return nil, errors.New("registry.administrator is required")
	}
	if config.Registry.DisputeResolver == "" {
		config.Registry.DisputeResolver = config.Registry.Administrator
	}

	return &config, nil
}

// LoadEventNotifierConfig loads configuration for event-notifier
func LoadEventNotifierConfig(configFile string, envPath string) (*EventNotifierConfig, error) {
	v := configureViper("event-notifier", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.consumer_name", "event-notifier")
	v.SetDefault("nats.connection_name", "ip-registry-event-notifier")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
	v.SetDefault("webhook.worker_pool_size", 20)
	v.SetDefault("webhook.delivery_timeout", "10s")
	v.SetDefault("webhook.initial_interval", "2s")
	v.SetDefault("webhook.max_interval", "1m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EventNotifierConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "REGISTRY_EVENTS")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Search for config.yaml in the current directory, the service
		// directory (e.g. cmd/api/) and the config directory
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("IP_REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)

	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Registry
		"registry.administrator",
		"registry.dispute_resolver",
		"registry.denylist_path",
		// Payment
		"payment.gateway_url",
		"payment.secret",
		"payment.timeout",
		"payment.max_retries",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"rate_limit.enabled",
		"rate_limit.requests_per_minute",
		"rate_limit.burst",
		// Webhook
		"webhook.worker_pool_size",
		"webhook.delivery_timeout",
		"webhook.initial_interval",
		"webhook.max_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Address returns the HTTP listen address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
