// README: Config loader with env defaults for HTTP, DB, Redis, Maps, Firebase and fare schedules.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"farefloor/internal/modules/pricing"
	"farefloor/internal/modules/scenario"
	"farefloor/internal/types"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	Maps struct {
		APIKey string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Log struct {
		Level string
	}
	// Schedules always contains pricing.DefaultTenant.
	Schedules  map[types.ID]pricing.RateSchedule
	Thresholds scenario.Thresholds
}

// schedulesFile is the optional YAML document named by FAREFLOOR_SCHEDULES_FILE.
type schedulesFile struct {
	Schedules  map[string]pricing.RateSchedule `yaml:"schedules"`
	Thresholds thresholdsFile                  `yaml:"thresholds"`
}

// thresholdsFile leaves unset keys nil so they keep their env value.
type thresholdsFile struct {
	Loophole    *float64 `yaml:"loophole_threshold"`
	Consistency *float64 `yaml:"consistency_threshold"`
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FAREFLOOR_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("FAREFLOOR_DB_DSN")
	cfg.Redis.Addr = os.Getenv("FAREFLOOR_REDIS_ADDR")
	cfg.Redis.CacheTTL = envOrDefaultDuration("FAREFLOOR_SCHEDULE_CACHE_TTL", 10*time.Minute)
	cfg.Maps.APIKey = os.Getenv("FAREFLOOR_MAPS_API_KEY")
	cfg.Firebase.ProjectID = os.Getenv("FAREFLOOR_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("FAREFLOOR_FIREBASE_CREDENTIALS_FILE")
	cfg.Log.Level = envOrDefault("FAREFLOOR_LOG_LEVEL", "INFO")

	def := pricing.DefaultRateSchedule()
	defaultSchedule, err := pricing.NewRateSchedule(
		envOrDefaultFloat("FAREFLOOR_RATE_PER_MINUTE", def.RatePerMinute),
		envOrDefaultFloat("FAREFLOOR_RATE_PER_KM", def.RatePerKm),
		envOrDefaultFloat("FAREFLOOR_PEAK_SURGE_FLOOR", def.PeakSurgeFloor),
	)
	if err != nil {
		return cfg, fmt.Errorf("default schedule: %w", err)
	}
	cfg.Schedules = map[types.ID]pricing.RateSchedule{pricing.DefaultTenant: defaultSchedule}

	th := scenario.DefaultThresholds()
	cfg.Thresholds = scenario.Thresholds{
		LoopholeThreshold:    envOrDefaultFloat("FAREFLOOR_LOOPHOLE_THRESHOLD", th.LoopholeThreshold),
		ConsistencyThreshold: envOrDefaultFloat("FAREFLOOR_CONSISTENCY_THRESHOLD", th.ConsistencyThreshold),
	}

	if path := os.Getenv("FAREFLOOR_SCHEDULES_FILE"); path != "" {
		if err := loadSchedulesFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("schedules file %s: %w", path, err)
		}
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadSchedulesFile merges file schedules over the env defaults. A "default"
// entry in the file replaces the env-built default schedule; each threshold
// key present in the file replaces its env value.
func loadSchedulesFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f schedulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for name, s := range f.Schedules {
		if name == "" {
			return fmt.Errorf("schedule with empty tenant name")
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("tenant %s: %w", name, err)
		}
		cfg.Schedules[types.ID(name)] = s
	}
	if f.Thresholds.Loophole != nil {
		cfg.Thresholds.LoopholeThreshold = *f.Thresholds.Loophole
	}
	if f.Thresholds.Consistency != nil {
		cfg.Thresholds.ConsistencyThreshold = *f.Thresholds.Consistency
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
