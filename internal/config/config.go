package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"redis"`

	Redis     Redis     `yaml:"redis"`
	Postgres  Postgres  `yaml:"postgres"`
	Room      Room      `yaml:"room"`
	WebSocket WebSocket `yaml:"websocket"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	PoolSize int    `yaml:"pool-size" env:"REDIS_POOL_SIZE" env-default:"20"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type Room struct {
	TeardownDelay time.Duration `yaml:"teardown-delay" env:"ROOM_TEARDOWN_DELAY" env-default:"5s"`
	SendBuffer    int           `yaml:"send-buffer" env:"ROOM_SEND_BUFFER" env-default:"16"`
}

type WebSocket struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"WEBSOCKET_ALLOWED_ORIGINS" env-default:"*"`
}

// MustLoad - loads .env next to the config file, then config.yml, then env overrides.
// A missing config.yml falls back to env and defaults only.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(filepath.Dir(path), ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageRedis, StorageMemory:
	case StoragePostgres:
		if that.Postgres.DSN == "" {
			return errors.New("postgres storage needs postgres.dsn")
		}
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	if that.Room.TeardownDelay < 0 {
		return errors.New("room.teardown-delay must not be negative")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
