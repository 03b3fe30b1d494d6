package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dastanaron/tilawah/internal/prayer"
	"github.com/dastanaron/tilawah/internal/qibla"
	"github.com/dastanaron/tilawah/internal/quran"
)

// Environment variables read by Load
const (
	EnvDBPath      = "TILAWAH_DB"
	EnvLatitude    = "TILAWAH_LAT"
	EnvLongitude   = "TILAWAH_LON"
	EnvQuranAPI    = "TILAWAH_QURAN_API"
	EnvPrayerAPI   = "TILAWAH_PRAYER_API"
	EnvLogLevel    = "TILAWAH_LOG_LEVEL"
	EnvLogFile     = "TILAWAH_LOG_FILE"
	EnvHTTPTimeout = "TILAWAH_HTTP_TIMEOUT"
)

// Config holds application configuration
type Config struct {
	DBPath      string
	Memory      bool
	Location    *qibla.Position
	QuranAPI    string
	PrayerAPI   string
	LogLevel    logrus.Level
	LogFile     string
	HTTPTimeout time.Duration
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DBPath:      getDefaultDBPath(),
		QuranAPI:    quran.DefaultBaseURL,
		PrayerAPI:   prayer.DefaultBaseURL,
		LogLevel:    logrus.InfoLevel,
		HTTPTimeout: 15 * time.Second,
	}
}

// Load returns the defaults overridden by the environment. Variables from
// the given dotenv files are loaded first; missing files are ignored and
// variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	cfg := NewConfig()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvDBPath); v != "" {
		c.WithDBPath(v)
	}
	if v := getenv(EnvQuranAPI); v != "" {
		c.QuranAPI = v
	}
	if v := getenv(EnvPrayerAPI); v != "" {
		c.PrayerAPI = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		if err := c.WithLogLevel(v); err != nil {
			return err
		}
	}
	if v := getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHTTPTimeout, err)
		}
		c.HTTPTimeout = d
	}

	lat, lon := strings.TrimSpace(getenv(EnvLatitude)), strings.TrimSpace(getenv(EnvLongitude))
	if lat == "" && lon == "" {
		return nil
	}
	if lat == "" || lon == "" {
		return fmt.Errorf("%s and %s must be set together", EnvLatitude, EnvLongitude)
	}
	pos, err := ParsePosition(lat, lon)
	if err != nil {
		return err
	}
	c.Location = &pos
	return nil
}

// WithDBPath sets a custom database path
func (c *Config) WithDBPath(path string) *Config {
	c.DBPath = path
	return c
}

// WithMemory keeps all state in memory; nothing is written to disk
func (c *Config) WithMemory() *Config {
	c.Memory = true
	return c
}

// WithLocation sets the reader's position
func (c *Config) WithLocation(p qibla.Position) *Config {
	c.Location = &p
	return c
}

// WithLogLevel parses and sets the log level
func (c *Config) WithLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	c.LogLevel = lvl
	return nil
}

// ParsePosition parses a latitude/longitude pair in decimal degrees
func ParsePosition(lat, lon string) (qibla.Position, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return qibla.Position{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return qibla.Position{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	pos := qibla.Position{Lat: la, Lon: lo}
	if err := pos.Validate(); err != nil {
		return qibla.Position{}, err
	}
	return pos, nil
}

func getDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "tilawah.db"
	}
	return filepath.Join(homeDir, ".tilawah", "tilawah.db")
}
