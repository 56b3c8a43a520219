package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64

	OutputDir    string
	DiffBaseName string
	Opacity      float64
	Workers      int
	ZonesFile    string
	ReportPath   string
	HistoryDB    string
	LogLevel     string

	// AllowedRoots and OutputBase confine the directories HTTP clients may name
	AllowedRoots []string
	OutputBase   string

	AzureAccount   string
	AzureKey       string
	AzureContainer string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// RequestPathLimits returns the roots and output base that bound request
// paths, falling back to the working directory and OutputDir when unset.
func (c *Config) RequestPathLimits() ([]string, string) {
	roots := c.AllowedRoots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	base := c.OutputBase
	if strings.TrimSpace(base) == "" {
		base = c.OutputDir
	}
	return roots, base
}

// AzureEnabled reports whether diff images should also go to blob storage
func (c *Config) AzureEnabled() bool {
	return c.AzureAccount != "" && c.AzureKey != "" && c.AzureContainer != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 5*time.Minute),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1024*1024), // 1MB
		OutputDir:          getEnvOrDefault("OUTPUT_DIR", "Picture Difference"),
		DiffBaseName:       getEnvOrDefault("DIFF_BASE_NAME", "difference_name"),
		Opacity:            parseFloatOrDefault("DIFF_OPACITY", 1.0),
		Workers:            int(parseIntOrDefault("COMPARE_WORKERS", 1)),
		ZonesFile:          os.Getenv("ZONES_FILE"),
		ReportPath:         getEnvOrDefault("REPORT_PATH", "Zone.csv"),
		HistoryDB:          os.Getenv("HISTORY_DB"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		AzureAccount:       os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureKey:           os.Getenv("AZURE_STORAGE_KEY"),
		AzureContainer:     os.Getenv("AZURE_CONTAINER"),
	}
	cfg.AllowedRoots = parseListOrDefault("ALLOWED_ROOTS", []string{"."})
	cfg.OutputBase = getEnvOrDefault("OUTPUT_BASE", cfg.OutputDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges of the loaded values
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", c.RequestTimeout)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("DIFF_OPACITY must be within [0,1] (got %v)", c.Opacity)
	}
	if c.Workers < 1 {
		return fmt.Errorf("COMPARE_WORKERS must be >= 1 (got %d)", c.Workers)
	}
	if strings.TrimSpace(c.DiffBaseName) == "" {
		return fmt.Errorf("DIFF_BASE_NAME cannot be empty")
	}
	if strings.ContainsAny(c.DiffBaseName, `/\`) {
		return fmt.Errorf("DIFF_BASE_NAME must not contain path separators (got %q)", c.DiffBaseName)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseListOrDefault splits a value on the OS path list separator, dropping empty entries
func parseListOrDefault(key string, defaultValue []string) []string {
	var out []string
	for _, item := range filepath.SplitList(os.Getenv(key)) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
