package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	PostgresURL    string `mapstructure:"POSTGRES_URL"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	AnalyzeWorkers int    `mapstructure:"ANALYZE_WORKERS"`
	FetchTimeout   int    `mapstructure:"FETCH_TIMEOUT"`
	MaxBodyBytes   int64  `mapstructure:"MAX_BODY_BYTES"`
	CacheTTLHours  int    `mapstructure:"CACHE_TTL_HOURS"`
	TavilyAPIKey   string `mapstructure:"TAVILY_API_KEY"`
	GreencheckURL  string `mapstructure:"GREENCHECK_URL"`
	TaxonomyPath   string `mapstructure:"TAXONOMY_PATH"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ANALYZE_WORKERS", 4)
	viper.SetDefault("FETCH_TIMEOUT", 10) // in seconds
	viper.SetDefault("MAX_BODY_BYTES", 5*1024*1024)
	viper.SetDefault("CACHE_TTL_HOURS", 1)
	viper.SetDefault("GREENCHECK_URL", "https://api.thegreenwebfoundation.org")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
