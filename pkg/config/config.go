package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Log    LogConfig
	CORS   CORSConfig
	Solver SolverConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SolverConfig selects the MaxSAT backend and the model-build strategy.
type SolverConfig struct {
	Backend          string
	OpenWBOPath      string
	DefaultTimeLimit time.Duration
	MaxTimeLimit     time.Duration
	Encoding         string
	Spread           string
	RequireAll       bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Solver = SolverConfig{
		Backend:          v.GetString("SOLVER_BACKEND"),
		OpenWBOPath:      v.GetString("SOLVER_OPENWBO_PATH"),
		DefaultTimeLimit: parseDuration(v.GetString("SOLVER_DEFAULT_TIME_LIMIT"), 30*time.Second),
		MaxTimeLimit:     parseDuration(v.GetString("SOLVER_MAX_TIME_LIMIT"), 5*time.Minute),
		Encoding:         v.GetString("SCHEDULE_ENCODING"),
		Spread:           v.GetString("SCHEDULE_SPREAD"),
		RequireAll:       v.GetBool("SCHEDULE_REQUIRE_ALL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ALLOWED_ORIGINS", "")

	v.SetDefault("SOLVER_BACKEND", "gophersat")
	v.SetDefault("SOLVER_OPENWBO_PATH", "open-wbo")
	v.SetDefault("SOLVER_DEFAULT_TIME_LIMIT", "30s")
	v.SetDefault("SOLVER_MAX_TIME_LIMIT", "5m")
	v.SetDefault("SCHEDULE_ENCODING", "period")
	v.SetDefault("SCHEDULE_SPREAD", "hard")
	v.SetDefault("SCHEDULE_REQUIRE_ALL", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
