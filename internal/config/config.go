package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvHost           = "MYSQL_HOST"
	EnvPort           = "MYSQL_PORT"
	EnvUser           = "MYSQL_USER"
	EnvPassword       = "MYSQL_PASSWORD"
	EnvConnectTimeout = "MYSQL_CONNECT_TIMEOUT"
)

// Config holds the base connection parameters shared by every call.
// It is never mutated after Load; per-call settings are derived with ForDatabase.
type Config struct {
	Host           string        `yaml:"host" validate:"required"`
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" validate:"min=0"`
}

// Default returns the connection parameters used when nothing is configured
func Default() Config {
	return Config{
		Host: "localhost",
		Port: 3306,
		User: "root",
	}
}

// Load resolves the configuration. Sources are applied in order, later ones winning:
// built-in defaults, the YAML file at path (if path is not empty), and environment
// variables (a .env file in the working directory is loaded first, without
// overriding variables that are already set).
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.loadEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	log.Printf("MySQL connection configured for %s@%s", cfg.User, cfg.Addr())
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok {
		c.Host = v
	}
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v, ok := lookup(EnvUser); ok {
		c.User = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Password = v
	}
	if v, ok := lookup(EnvConnectTimeout); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConnectTimeout, v, err)
		}
		c.ConnectTimeout = timeout
	}
	return nil
}

// Validate checks the connection parameters
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Addr returns host:port
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ForDatabase builds a fresh driver configuration targeting database.
// Every call gets its own value, so concurrent calls never share settings.
func (c Config) ForDatabase(database string) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Addr()
	mc.DBName = database
	mc.Timeout = c.ConnectTimeout
	return mc
}
