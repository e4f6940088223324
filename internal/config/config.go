package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	InterfaceHTTP = "http"
	InterfaceCLI  = "cli"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Interface string `yaml:"interface" env:"INTERFACE" env-default:"http"`
	Redis     Redis  `yaml:"redis"`
	Game      Game   `yaml:"game"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game - the symbol policy and where the running game is kept.
type Game struct {
	ChooseSymbol bool   `yaml:"choose-symbol" env:"GAME_CHOOSE_SYMBOL" env-default:"false"`
	HumanMark    string `yaml:"human-mark" env:"GAME_HUMAN_MARK" env-default:"X"`
	SessionID    string `yaml:"session-id" env:"GAME_SESSION_ID" env-default:"local"`
	HistorySize  int64  `yaml:"history-size" env:"GAME_HISTORY_SIZE" env-default:"20"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
