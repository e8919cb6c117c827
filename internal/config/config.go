package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Cache      Cache  `yaml:"cache"`
	Maze       Maze   `yaml:"maze"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Cache holds expirations for stored results. Zero keeps a key forever.
type Cache struct {
	MoveTTL     time.Duration `yaml:"move-ttl" env:"CACHE_MOVE_TTL" env-default:"0s"`
	SolutionTTL time.Duration `yaml:"solution-ttl" env:"CACHE_SOLUTION_TTL" env-default:"24h"`
	GameTTL     time.Duration `yaml:"game-ttl" env:"CACHE_GAME_TTL" env-default:"1h"`
}

type Maze struct {
	Strategy       string `yaml:"strategy" env:"MAZE_STRATEGY" env-default:"bfs"`
	MaxLayoutBytes int64  `yaml:"max-layout-bytes" env:"MAZE_MAX_LAYOUT_BYTES" env-default:"16384"`
}

// MustLoad - load .env if present, then config.yml with environment overrides.
func MustLoad(path string) *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env file not loaded: %v", err)
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
