package container

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-zone-diff/internal/config"

	"github.com/gin-gonic/gin"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     time.Minute,
		MaxRequestBodySize: 1 << 20,
		OutputDir:          filepath.Join(t.TempDir(), "out"),
		DiffBaseName:       "difference_name",
		Opacity:            1,
		Workers:            1,
		LogLevel:           "error",
	}
}

func TestNewContainer_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := NewContainer(testConfig(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer c.Close()

	if c.History() != nil {
		t.Error("Expected no history without HISTORY_DB")
	}
	if len(c.Zones().Zones) != 4 {
		t.Errorf("Expected default zones, got %d", len(c.Zones().Zones))
	}

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected healthy handler, got %d", w.Code)
	}
}

func TestNewContainer_WithHistoryAndZones(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	zones := filepath.Join(dir, "zones.yaml")
	yaml := "canonical:\n  width: 100\n  height: 50\nzones:\n  - name: Header\n    bounds: [0, 100, 0, 10]\n"
	if err := os.WriteFile(zones, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.ZonesFile = zones
	cfg.HistoryDB = filepath.Join(dir, "history.db")

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer c.Close()

	if c.History() == nil {
		t.Fatal("Expected history repository")
	}
	if names := c.Service().Zones().Names(); len(names) != 1 || names[0] != "Header" {
		t.Errorf("Expected zones from file, got %v", names)
	}

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected /runs to be served with history, got %d", w.Code)
	}
}

func TestNewContainer_BadZonesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ZonesFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := NewContainer(cfg); err == nil {
		t.Error("Expected error for missing zones file")
	}
}
