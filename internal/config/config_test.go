package config

import (
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 0},
		Storage: StorageConfig{Driver: "memory"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownStorageDriver(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: "postgres"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: "redis"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.Database.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestValidate_LocalDrivers(t *testing.T) {
	for _, driver := range []string{"memory", "file"} {
		t.Run("driver="+driver, func(t *testing.T) {
			cfg := Config{
				HTTP:    HTTPConfig{Port: 8080},
				Storage: StorageConfig{Driver: driver},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for driver %q: %v", driver, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected Driver='memory', got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.KeyPrefix != "facetdex:" {
		t.Errorf("expected KeyPrefix='facetdex:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.DebounceMs != 200 {
		t.Errorf("expected DebounceMs=200, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Search.PipelineTimeoutSec != 3 {
		t.Errorf("expected PipelineTimeoutSec=3, got %d", cfg.Search.PipelineTimeoutSec)
	}
	if cfg.Search.ProductCap != 6 || cfg.Search.CategoryCap != 3 ||
		cfg.Search.BrandCap != 2 || cfg.Search.SuggestionCap != 2 {
		t.Errorf("unexpected caps: %+v", cfg.Search)
	}
	if cfg.Search.SessionTTLSec != 1800 {
		t.Errorf("expected SessionTTLSec=1800, got %d", cfg.Search.SessionTTLSec)
	}
	if cfg.Seeds.Catalog != "config/catalog.yaml" {
		t.Errorf("expected default catalog seed path, got %q", cfg.Seeds.Catalog)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Storage: StorageConfig{Driver: "file", FilePath: "/var/lib/facetdex/sets.json", KeyPrefix: "custom:"},
		Search:  SearchConfig{DebounceMs: 50, ProductCap: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Storage.FilePath != "/var/lib/facetdex/sets.json" {
		t.Errorf("expected FilePath to survive, got %q", cfg.Storage.FilePath)
	}
	if cfg.Search.DebounceMs != 50 {
		t.Errorf("expected DebounceMs=50, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Search.ProductCap != 10 {
		t.Errorf("expected ProductCap=10, got %d", cfg.Search.ProductCap)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FACETDEX_TEST_PORT", "9090")

	in := []byte("port: ${FACETDEX_TEST_PORT}\nlevel: ${FACETDEX_TEST_MISSING:-info}\n")
	out := string(expandEnvVars(in))

	want := "port: 9090\nlevel: info\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
