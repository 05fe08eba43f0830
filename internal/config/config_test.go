package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Mongo.Database != "doctorshift" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.Uploads.Dir != "uploads" {
		t.Errorf("uploads dir = %q", cfg.Uploads.Dir)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should default on")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  env: prod
http:
  addr: ":9090"
mongo:
  database: shiftdb
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("APP_MONGO_URI", "mongodb://db.internal:27017")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Env != "prod" {
		t.Errorf("env = %q", cfg.App.Env)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Mongo.Database != "shiftdb" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
	if cfg.Mongo.URI != "mongodb://db.internal:27017" {
		t.Errorf("env override lost, uri = %q", cfg.Mongo.URI)
	}
}
