package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SUPPLYCOVER_"

// Config holds the runtime settings of supplycover
type Config struct {
	OwnPartnerBPNL string      `yaml:"own_partner_bpnl" validate:"required"`
	Timezone       string      `yaml:"timezone" validate:"required"`
	HorizonDays    int         `yaml:"horizon_days" validate:"gte=1,lte=3650"`
	LogMode        string      `yaml:"log_mode" validate:"oneof=dev prod"`
	DataDir        string      `yaml:"data_dir"`
	Store          StoreConfig `yaml:"store"`
	Cache          CacheConfig `yaml:"cache"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory sqlite"`
	DSN    string `yaml:"dsn" validate:"required_if=Driver sqlite"`
}

type CacheConfig struct {
	Driver string        `yaml:"driver" validate:"oneof=none memory redis"`
	Addr   string        `yaml:"addr" validate:"required_if=Driver redis"`
	TTL    time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Timezone:    "UTC",
		HorizonDays: 28,
		LogMode:     "dev",
		Store:       StoreConfig{Driver: "memory"},
		Cache:       CacheConfig{Driver: "none", TTL: 5 * time.Minute},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides, then overrides, and validates the result. An empty
// path skips the file. A .env file in the working directory is loaded first
// when present.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown fields
func Parse(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from SUPPLYCOVER_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"OWN_PARTNER_BPNL": &c.OwnPartnerBPNL,
		"TIMEZONE":         &c.Timezone,
		"LOG_MODE":         &c.LogMode,
		"DATA_DIR":         &c.DataDir,
		"STORE_DRIVER":     &c.Store.Driver,
		"STORE_DSN":        &c.Store.DSN,
		"CACHE_DRIVER":     &c.Cache.Driver,
		"CACHE_ADDR":       &c.Cache.Addr,
	}
	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPrefix + "HORIZON_DAYS"); ok {
		days, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sHORIZON_DAYS: %s", EnvPrefix, v)
		}
		c.HorizonDays = days
	}
	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sCACHE_TTL: %s", EnvPrefix, v)
		}
		c.Cache.TTL = ttl
	}
	return nil
}

// Validate checks field constraints and the own partner BPNL and time zone
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, ve := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s (%s)", ve.Namespace(), ve.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Calendar(); err != nil {
		return fmt.Errorf("invalid config: unknown timezone %s", c.Timezone)
	}
	return nil
}

// Calendar returns the calendar of the configured time zone
func (c *Config) Calendar() (entities.Calendar, error) {
	return entities.LoadCalendar(c.Timezone)
}

// OwnPartner returns the configured own partner BPNL
func (c *Config) OwnPartner() entities.BPNL {
	return entities.BPNL(c.OwnPartnerBPNL)
}
