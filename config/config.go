package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	DashScope DashScopeConfig `mapstructure:"dashscope"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	LogLevel  string          `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds the database connection settings. URL accepts either
// a sqlite file path (default) or a postgres DSN.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// DashScopeConfig holds settings for the DashScope chat-completions API.
type DashScopeConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds the per-endpoint and global rate limit settings.
type RateLimitConfig struct {
	GenerateRequests int           `mapstructure:"generate_requests"`
	GenerateWindow   time.Duration `mapstructure:"generate_window"`
	GlobalPerHour    int           `mapstructure:"global_per_hour"`
	GlobalPerDay     int           `mapstructure:"global_per_day"`
}

// CORSConfig holds the allowed origins for browser clients.
type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// Generation limits.
const (
	MinIngredients    = 1
	MaxIngredients    = 20
	RecipesPerRequest = 3
	SubstituteLimit   = 5
)

// Allowed values used for input validation at the API boundary.
var (
	AllowedCategories = []string{"蔬菜", "肉禽", "海鲜", "主食", "调料", "水果", "豆制品", "蛋奶"}
	AllowedStorage    = []string{"fridge", "freezer", "pantry"}
	AllowedStates     = []string{"新鲜", "冷冻", "常温", "剩余"}
	AllowedCuisines   = []string{"中式", "西式", "日韩", "东南亚", "其他"}
	AllowedTastes     = []string{"酸", "甜", "苦", "辣", "咸", "清淡"}
	AllowedScenarios  = []string{"早餐", "快手菜", "硬菜", "宴客菜", "夜宵"}
	AllowedSkills     = []string{"新手", "进阶", "专业"}
)

// DefaultState is assumed when an ingredient state is missing or invalid.
const DefaultState = "常温"

// DefaultQuantity is assumed when an ingredient quantity is missing.
const DefaultQuantity = "适量"

// IsAllowed reports whether value belongs to the given allow-list.
func IsAllowed(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from the environment and an optional .env
// file, applying defaults and validating the result.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment alone may be enough.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("SMARTCOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("dashscope.api_key", "DASHSCOPE_API_KEY")
	viper.BindEnv("dashscope.base_url", "DASHSCOPE_BASE_URL")
	viper.BindEnv("dashscope.model", "DASHSCOPE_MODEL")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("cors.origins", "CORS_ORIGINS")
	viper.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("database.url", "smartcook.db")

	viper.SetDefault("dashscope.base_url", "https://dashscope.aliyuncs.com/compatible-mode/v1")
	viper.SetDefault("dashscope.model", "qwen-turbo")
	viper.SetDefault("dashscope.temperature", 0.8)
	viper.SetDefault("dashscope.max_tokens", 2000)
	viper.SetDefault("dashscope.timeout", "60s")

	viper.SetDefault("rate_limit.generate_requests", 10)
	viper.SetDefault("rate_limit.generate_window", "1h")
	viper.SetDefault("rate_limit.global_per_hour", 50)
	viper.SetDefault("rate_limit.global_per_day", 200)

	viper.SetDefault("cors.origins", []string{"*"})

	viper.SetDefault("log_level", "info")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}
	if cfg.RateLimit.GenerateRequests <= 0 || cfg.RateLimit.GenerateWindow <= 0 {
		return fmt.Errorf("invalid rate limit settings")
	}
	if cfg.DashScope.APIKey == "" {
		// Startup is still allowed; generation falls back until the key is set.
		fmt.Println("[WARNING] DASHSCOPE_API_KEY is not set, recipe generation will use fallback data")
	}
	return nil
}
