package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string    `yaml:"env" env-default:"local" env:"ENV"`
	Name      string    `yaml:"name" env-default:"Player" env:"NAME"`
	Discovery Discovery `yaml:"discovery"`
	Game      Game      `yaml:"game"`
	Storage   Storage   `yaml:"storage"`
}

// Discovery содержит настройки multicast-обнаружения хоста
type Discovery struct {
	Group     string `yaml:"group" env-default:"239.255.42.98" env:"DISCOVERY_GROUP"`
	Port      int    `yaml:"port" env-default:"50692" env:"DISCOVERY_PORT"`
	Interface string `yaml:"interface" env:"DISCOVERY_INTERFACE"`
	TTL       int    `yaml:"ttl" env-default:"1" env:"DISCOVERY_TTL"`
	// 0 - ждать без ограничения
	ReceiveTimeout time.Duration `yaml:"receive_timeout" env-default:"0s" env:"DISCOVERY_RECEIVE_TIMEOUT"`
	BufferSize     int           `yaml:"buffer_size" env-default:"4096" env:"DISCOVERY_BUFFER_SIZE"`

	StrictCodec       bool `yaml:"strict_codec" env:"DISCOVERY_STRICT_CODEC"`
	StopOnFirstHost   bool `yaml:"stop_on_first_host" env:"DISCOVERY_STOP_ON_FIRST_HOST"`
	FatalDecodeErrors bool `yaml:"fatal_decode_errors" env:"DISCOVERY_FATAL_DECODE_ERRORS"`
}

// Game содержит настройки игры
type Game struct {
	TotalTime time.Duration `yaml:"total_time" env-default:"120s" env:"GAME_TOTAL_TIME"`
	// 0 - случайный seed
	Seed uint64 `yaml:"seed" env:"GAME_SEED"`
}

type Storage struct {
	Path string `yaml:"path" env-default:"zetalan.db" env:"STORAGE_PATH"`
}

// MustLoad загружает конфигурацию и паникует при ошибке.
// Priority: path argument > CONFIG_PATH env > env/defaults only.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic("cannot read config: " + err.Error())
	}
	return cfg
}

// Load читает конфигурацию из yaml-файла (если путь задан) и переменных окружения
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	return &cfg, nil
}
