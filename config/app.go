package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CAREER_COMPASS_SERVER_PORT.
const EnvPrefix = "CAREER_COMPASS"

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageBadger   = "badger"
	StoragePostgres = "postgres"
)

// Embedding providers.
const (
	EmbeddingProviderHash   = "hash"
	EmbeddingProviderOpenAI = "openai"
)

// AppConfig is the process-wide configuration for the server and CLI.
type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Ranking   RankingSettings `mapstructure:"ranking"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`      // memory, badger or postgres
	DataDir     string `mapstructure:"data-dir"`     // snapshot dir for memory, db dir for badger
	PostgresURL string `mapstructure:"postgres-url"` // only for postgres
}

type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"` // hash or openai
	Host      string `mapstructure:"host"`
	Model     string `mapstructure:"model"`
	Token     string `mapstructure:"token"`
	PoolSize  int    `mapstructure:"pool-size"`
	BatchSize int    `mapstructure:"batch-size"`
}

type MatchingConfig struct {
	Concurrency         int           `mapstructure:"concurrency"`
	Timeout             time.Duration `mapstructure:"timeout"`
	RecommendationLimit int           `mapstructure:"recommendation-limit"`
}

type TasksConfig struct {
	Workers   int           `mapstructure:"workers"`
	Retention time.Duration `mapstructure:"retention"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)
	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("storage.data-dir", "./data")
	v.SetDefault("embedding.provider", EmbeddingProviderHash)
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.token", "none")
	v.SetDefault("embedding.pool-size", 4)
	v.SetDefault("embedding.batch-size", 32)
	v.SetDefault("matching.concurrency", 8)
	v.SetDefault("matching.timeout", 30*time.Second)
	v.SetDefault("matching.recommendation-limit", 10)
	v.SetDefault("tasks.workers", 2)
	v.SetDefault("tasks.retention", 24*time.Hour)
}

// Load builds an AppConfig. Environment variables (after an optional .env file)
// override the config file at path, which overrides the defaults.
func Load(v *viper.Viper, path string) (*AppConfig, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("career-compass")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Ranking.ApplyDefaults()

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return &cfg, nil
}

// Validate checks the application-level options. Ranking settings are
// validated again by the ranking service, which owns that contract.
func (cfg *AppConfig) Validate() []string {
	var problems []string

	switch cfg.Storage.Backend {
	case StorageMemory, StorageBadger:
	case StoragePostgres:
		if cfg.Storage.PostgresURL == "" {
			problems = append(problems, "storage.postgres-url is required for the postgres backend")
		}
	default:
		problems = append(problems, "Invalid storage.backend '"+cfg.Storage.Backend+"'")
	}

	switch cfg.Embedding.Provider {
	case EmbeddingProviderHash:
	case EmbeddingProviderOpenAI:
		if cfg.Embedding.Host == "" {
			problems = append(problems, "embedding.host is required for the openai provider")
		}
	default:
		problems = append(problems, "Invalid embedding.provider '"+cfg.Embedding.Provider+"'")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", cfg.Server.Port))
	}

	return append(problems, cfg.Ranking.Validate()...)
}
