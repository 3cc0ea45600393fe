package config

import (
	"errors"
	"fmt"
	"maintenance-route-service/internal/domain"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings. Optional collaborators (database,
// device API, Redis, MinIO, Kafka) are disabled when their address is empty.
type Config struct {
	Port        string
	DatabaseURL string
	SeedPath    string

	DeviceAPIURL   string
	DeviceAPIToken string

	Depot              domain.Coordinates
	DepotName          string
	PeriodDays         int
	SuggestionBufferKm float64

	RedisAddr     string
	RouteCacheTTL time.Duration

	MinIO MinIOConfig

	KafkaBroker string
	RouteTopic  string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("seed_path", "data/seeds/devices.json")
	v.SetDefault("device_api.url", "")
	v.SetDefault("device_api.token", "")
	v.SetDefault("depot.lat", 0.332078)
	v.SetDefault("depot.lon", 32.570473)
	v.SetDefault("depot.name", "Head Office")
	v.SetDefault("period_days", 14)
	v.SetDefault("suggestion_buffer_km", 10.0)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.route_ttl", "10m")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "maintenance-routes")
	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.topic", "maintenance.route.computed")
}

// Load reads settings from an optional YAML file at path, then lets
// environment variables override any key ("depot.lat" -> DEPOT_LAT).
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("load config: read %q: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config: stat %q: %w", path, err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		DatabaseURL:    strings.TrimSpace(v.GetString("database_url")),
		SeedPath:       v.GetString("seed_path"),
		DeviceAPIURL:   strings.TrimRight(strings.TrimSpace(v.GetString("device_api.url")), "/"),
		DeviceAPIToken: v.GetString("device_api.token"),
		Depot: domain.Coordinates{
			Lat: v.GetFloat64("depot.lat"),
			Lon: v.GetFloat64("depot.lon"),
		},
		DepotName:          v.GetString("depot.name"),
		PeriodDays:         v.GetInt("period_days"),
		SuggestionBufferKm: v.GetFloat64("suggestion_buffer_km"),
		RedisAddr:          strings.TrimSpace(v.GetString("redis.addr")),
		RouteCacheTTL:      v.GetDuration("redis.route_ttl"),
		MinIO: MinIOConfig{
			Endpoint:  strings.TrimSpace(v.GetString("minio.endpoint")),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			UseSSL:    v.GetBool("minio.use_ssl"),
			Bucket:    v.GetString("minio.bucket"),
		},
		KafkaBroker: strings.TrimSpace(v.GetString("kafka.broker")),
		RouteTopic:  v.GetString("kafka.topic"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !c.Depot.Valid() {
		return fmt.Errorf("depot coordinates (%v, %v) must be finite", c.Depot.Lat, c.Depot.Lon)
	}
	if c.PeriodDays < 1 || c.PeriodDays > 365 {
		return fmt.Errorf("period_days must be between 1 and 365, got %d", c.PeriodDays)
	}
	if c.SuggestionBufferKm < 0 {
		return fmt.Errorf("suggestion_buffer_km must not be negative, got %v", c.SuggestionBufferKm)
	}
	if c.MinIO.Endpoint != "" && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		return errors.New("minio.access_key and minio.secret_key are required when minio.endpoint is set")
	}
	return nil
}
