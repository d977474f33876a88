package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server     ServerConfig
	App        AppConfig
	Cache      CacheConfig
	Search     SearchConfig
	Dexcom     DexcomConfig
	Nightscout NightscoutConfig
	Nutrition  NutritionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"t1d-manager-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`

	// AdminAPIKey protects the admin endpoints. When empty, admin
	// endpoints reject every request.
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" default:""`
}

// CacheConfig holds Redis cache settings.
// The cache is optional: when Redis is unreachable the service runs
// with caching disabled.
type CacheConfig struct {
	RedisHost      string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort      int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	ConnectTimeout time.Duration `envconfig:"REDIS_CONNECT_TIMEOUT" default:"2s"`
	OpTimeout      time.Duration `envconfig:"REDIS_OP_TIMEOUT" default:"2s"`

	// SearchTTL is how long community search results stay cached.
	SearchTTL time.Duration `envconfig:"CACHE_SEARCH_TTL" default:"720h"`
}

// SearchConfig holds credentials for the community search providers.
// Either provider may be left unconfigured; it is then skipped.
type SearchConfig struct {
	NaverClientID     string `envconfig:"NAVER_CLIENT_ID" default:""`
	NaverClientSecret string `envconfig:"NAVER_CLIENT_SECRET" default:""`
	KakaoAPIKey       string `envconfig:"KAKAO_API_KEY" default:""`
	ResultCount       int    `envconfig:"SEARCH_RESULT_COUNT" default:"3"`
}

// DexcomConfig holds Dexcom Developer API OAuth settings.
type DexcomConfig struct {
	ClientID     string `envconfig:"DEXCOM_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"DEXCOM_CLIENT_SECRET" default:""`
	RedirectURI  string `envconfig:"DEXCOM_REDIRECT_URI" default:"http://localhost:8080/callback"`
	Sandbox      bool   `envconfig:"DEXCOM_SANDBOX" default:"true"`
}

// NightscoutConfig holds Nightscout instance settings.
type NightscoutConfig struct {
	URL       string `envconfig:"NIGHTSCOUT_URL" default:""`
	APISecret string `envconfig:"NIGHTSCOUT_API_SECRET" default:""`
}

// NutritionConfig holds nutrition database settings.
type NutritionConfig struct {
	Type string `envconfig:"NUTRITION_DB_TYPE" default:"memory"` // memory or sqlite
	Path string `envconfig:"NUTRITION_DB_PATH" default:"./data/nutrition.db"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
