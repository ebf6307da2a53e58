// Package config loads and holds the application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Conf is the global configuration loaded from the config file.
var Conf Config

// Config mirrors the structure of configs/config.yaml.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
	Classifier   ClassifierConfig   `mapstructure:"classifier"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Kafka        KafkaConfig        `mapstructure:"kafka"`
	Conversation ConversationConfig `mapstructure:"conversation"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// GeminiConfig holds the generative model settings. An empty APIKey puts the
// service in limited mode.
type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	BaseURL         string  `mapstructure:"base_url"`
	Model           string  `mapstructure:"model"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// ClassifierConfig holds the emotion classification endpoint settings.
type ClassifierConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	TopK    int    `mapstructure:"top_k"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend   string `mapstructure:"backend"` // "memory" or "redis"
	Size      int    `mapstructure:"size"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig holds the connection settings of external stores.
type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig holds the mood event stream settings. Empty Brokers disables publishing.
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// ConversationConfig bounds the in-memory chat history.
type ConversationConfig struct {
	HistoryWindow int `mapstructure:"history_window"`
	MaxTurns      int `mapstructure:"max_turns"`
}

// Init reads the YAML file at configPath into Conf. Environment variables
// override file values, e.g. GEMINI_API_KEY for gemini.api_key.
func Init(configPath string) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read config file: %w", err))
	}

	if err := v.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}
}

// Default returns a Config populated only from defaults and the environment.
func Default() Config {
	var c Config
	_ = newViper().Unmarshal(&c)
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.temperature", 0)
	v.SetDefault("gemini.max_output_tokens", 0)
	v.SetDefault("classifier.base_url", "")
	v.SetDefault("classifier.model", "j-hartmann/emotion-english-distilroberta-base")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.top_k", 7)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.size", 50)
	v.SetDefault("cache.key_prefix", "companion:cache")
	v.SetDefault("database.redis.addr", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "companion.mood-events")
	v.SetDefault("conversation.history_window", 3)
	v.SetDefault("conversation.max_turns", 50)
	return v
}
