package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/skillgraph-backend/internal/matching"
	"github.com/yungbote/skillgraph-backend/internal/platform/envutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

type Config struct {
	Env         string
	ServiceName string
	Version     string

	HTTPAddr    string
	MetricsAddr string
	MCPAddr     string

	JWTSecretKey string
	JWTIssuer    string

	// DefaultLimit applies when a recommendation request omits ?limit=.
	DefaultLimit          int
	NotificationListLimit int
	ShutdownTimeout       time.Duration

	Matching matching.Config
}

// fileConfig is the optional YAML overlay named by SKILLGRAPH_CONFIG.
type fileConfig struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Recommendations struct {
		DefaultLimit int `yaml:"default_limit"`
	} `yaml:"recommendations"`
	Matching matching.Config `yaml:"matching"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Env:                   envutil.String("APP_ENV", "development"),
		ServiceName:           envutil.String("SERVICE_NAME", "skillgraph"),
		Version:               envutil.String("APP_VERSION", "dev"),
		HTTPAddr:              envutil.String("HTTP_ADDR", ":"+envutil.String("PORT", "8080")),
		MetricsAddr:           envutil.String("METRICS_ADDR", ""),
		MCPAddr:               envutil.String("MCP_ADDR", ":8081"),
		JWTSecretKey:          envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:             envutil.String("JWT_ISSUER", ""),
		DefaultLimit:          envutil.Int("RECOMMEND_DEFAULT_LIMIT", 10),
		NotificationListLimit: envutil.Int("NOTIFICATION_LIST_LIMIT", 20),
		ShutdownTimeout:       envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 10),
		Matching:              matching.DefaultConfig(),
	}

	if path := strings.TrimSpace(os.Getenv("SKILLGRAPH_CONFIG")); path != "" {
		if err := cfg.overlay(path); err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("config overlay applied", "path", path)
		}
	}

	if tz := envutil.String("MATCH_TIMEZONE", ""); tz != "" {
		cfg.Matching.Timezone = tz
	}
	cfg.Matching.SemanticTopK = envutil.Int("SEMANTIC_TOP_K", cfg.Matching.SemanticTopK)
	cfg.Matching = cfg.Matching.Normalize()

	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.NotificationListLimit <= 0 {
		cfg.NotificationListLimit = 20
	}
	return cfg, nil
}

func (c *Config) overlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	fc := fileConfig{Matching: c.Matching}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.HTTP.Addr != "" {
		c.HTTPAddr = fc.HTTP.Addr
	}
	if fc.Recommendations.DefaultLimit > 0 {
		c.DefaultLimit = fc.Recommendations.DefaultLimit
	}
	c.Matching = fc.Matching
	return nil
}

// RequireJWT fails when no signing secret is configured.
func (c Config) RequireJWT() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}
