package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestParse(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
own_partner_bpnl: BPNL1234567890ZZ
timezone: Europe/Berlin
horizon_days: 14
store:
  driver: sqlite
  dsn: /tmp/records.db
cache:
  driver: redis
  addr: localhost:6379
  ttl: 90s
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, "BPNL1234567890ZZ", cfg.OwnPartnerBPNL)
	assert.Equal(t, 14, cfg.HorizonDays)
	assert.Equal(t, "dev", cfg.LogMode, "unset fields keep their default")
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	err := Parse([]byte("horizon: 3\n"), Default())
	assert.Error(t, err)
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse(nil, cfg))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"SUPPLYCOVER_OWN_PARTNER_BPNL": " BPNL1234567890ZZ ",
		"SUPPLYCOVER_HORIZON_DAYS":     "7",
		"SUPPLYCOVER_CACHE_DRIVER":     "memory",
		"SUPPLYCOVER_CACHE_TTL":        "1m",
	}))
	require.NoError(t, err)

	assert.Equal(t, "BPNL1234567890ZZ", cfg.OwnPartnerBPNL)
	assert.Equal(t, 7, cfg.HorizonDays)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)

	assert.Error(t, Default().ApplyEnv(lookupFrom(map[string]string{"SUPPLYCOVER_HORIZON_DAYS": "soon"})))
	assert.Error(t, Default().ApplyEnv(lookupFrom(map[string]string{"SUPPLYCOVER_CACHE_TTL": "forever"})))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.OwnPartnerBPNL = "BPNL1234567890ZZ"
		return cfg
	}
	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing own partner", func(c *Config) { c.OwnPartnerBPNL = "" }},
		{"zero horizon", func(c *Config) { c.HorizonDays = 0 }},
		{"unknown log mode", func(c *Config) { c.LogMode = "verbose" }},
		{"unknown store driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"sqlite without dsn", func(c *Config) { c.Store.Driver = "sqlite" }},
		{"redis without addr", func(c *Config) { c.Cache.Driver = "redis" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplycover.yaml")
	require.NoError(t, os.WriteFile(path, []byte("own_partner_bpnl: BPNL1234567890ZZ\nhorizon_days: 10\n"), 0o644))
	t.Setenv("SUPPLYCOVER_HORIZON_DAYS", "21")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.HorizonDays)
	assert.Equal(t, "BPNL1234567890ZZ", string(cfg.OwnPartner()))

	calendar, err := cfg.Calendar()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, calendar.Location())

	cfg, err = Load(path, func(c *Config) { c.HorizonDays = 3 })
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.HorizonDays, "overrides win over the environment")

	_, err = Load(path, func(c *Config) { c.OwnPartnerBPNL = "" })
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
