// Package config loads service settings from flags, the environment, an
// optional .env file and an optional config file, in that precedence order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported values of DB_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Port          string        `mapstructure:"PORT"`
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	MongoURI      string        `mapstructure:"MONGODB_URI"`
	MongoHost     string        `mapstructure:"MONGODB_HOST"`
	MongoDatabase string        `mapstructure:"MONGODB_DATABASE"`
	DBUser        string        `mapstructure:"DB_USER"`
	DBPass        string        `mapstructure:"DB_PASS"`
	DatabaseDSN   string        `mapstructure:"DATABASE_DSN"`
	JWTSecret     string        `mapstructure:"ACCESS_TOKEN_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	StripeKey     string        `mapstructure:"STRIPE_SECRET_KEY"`
	RabbitMQURL   string        `mapstructure:"RABBITMQ_URL"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"PORT", "DB_DRIVER", "MONGODB_URI", "MONGODB_HOST", "MONGODB_DATABASE",
	"DB_USER", "DB_PASS", "DATABASE_DSN", "ACCESS_TOKEN_SECRET", "TOKEN_TTL",
	"STRIPE_SECRET_KEY", "RABBITMQ_URL", "LOG_LEVEL",
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_HOST", "cluster0.mfte2wh.mongodb.net")
	v.SetDefault("MONGODB_DATABASE", "bistroDB")
	v.SetDefault("DATABASE_DSN", "file:bistro.db?cache=shared")
	v.SetDefault("TOKEN_TTL", 12*time.Hour)
	v.SetDefault("LOG_LEVEL", "INFO")
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("bistro", pflag.ContinueOnError)
	fs.String("port", "", "HTTP listen port (overrides PORT)")
	fs.String("config", "", "optional config file (json, yaml, toml or env)")
	fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
	return fs
}

// Load parses args, loads the dotenv file if present and returns the merged config.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	envFile, _ := fs.GetString("env-file")
	if envFile != "" {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	if err := v.BindPFlag("PORT", fs.Lookup("port")); err != nil {
		return nil, err
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates the config held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required settings are present and consistent.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("missing required config field: ACCESS_TOKEN_SECRET")
	}
	switch c.DBDriver {
	case DriverMongo, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// ListenAddr returns the address passed to fiber's Listen.
func (c *Config) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// MongoConnectionURI returns MONGODB_URI when set, otherwise an Atlas SRV
// URI built from DB_USER, DB_PASS and MONGODB_HOST.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.DBUser == "" {
		return "mongodb://localhost:27017"
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.MongoHost,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}
