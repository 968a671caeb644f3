package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"github.com/Astemirdum/library-catalog/pkg/kafka"
	"github.com/Astemirdum/library-catalog/pkg/logger"
	"github.com/Astemirdum/library-catalog/pkg/postgres"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverBolt     = "bolt"

	// FileEnv names an optional YAML file applied before the environment.
	FileEnv = "CATALOG_CONFIG_FILE"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"CATALOG_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"CATALOG_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Store struct {
	Driver   string `yaml:"driver" envconfig:"STORE_DRIVER"`
	BoltPath string `yaml:"boltPath" envconfig:"BOLT_PATH"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Store    Store        `yaml:"store"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

func defaults() Config {
	return Config{
		Server: HTTPServer{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Store: Store{
			Driver:   StoreDriverPostgres,
			BoltPath: "catalog.db",
		},
		Database: postgres.DB{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		Kafka: kafka.Config{
			Topic: kafka.CatalogTopic,
		},
		Log: logger.Log{LogLevel: zapcore.InfoLevel},
	}
}

// Load builds the config. Later sources win: defaults, options, the YAML
// file named by CATALOG_CONFIG_FILE, then environment variables.
func Load(ops ...Option) (*Config, error) {
	config := defaults()
	for _, op := range ops {
		op(&config)
	}
	if path := os.Getenv(FileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.UnmarshalStrict(data, &config); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	switch config.Store.Driver {
	case StoreDriverPostgres, StoreDriverBolt:
	default:
		return nil, errors.Errorf("unknown store driver %q", config.Store.Driver)
	}
	return &config, nil
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config once per process and exits on failure.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
	})

	return cfg
}
