package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func loadFrom(t *testing.T, env map[string]string) *Config {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	if err != nil {
		t.Fatalf("process config: %v", err)
	}
	return &cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFrom(t, map[string]string{})

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.JWTSecret)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "dev_manager" {
		t.Errorf("Mongo.Database = %q, want dev_manager", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Admin.Email != "admin@devmanager.com" {
		t.Errorf("Admin.Email = %q, want admin@devmanager.com", cfg.Admin.Email)
	}
	if cfg.Admin.Name != "Administrator" {
		t.Errorf("Admin.Name = %q, want Administrator", cfg.Admin.Name)
	}
	if cfg.ActivityWorkers != 0 {
		t.Errorf("ActivityWorkers = %d, want 0", cfg.ActivityWorkers)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	cfg := loadFrom(t, map[string]string{
		"PORT":        "9090",
		"JWT_SECRET":  "topsecret",
		"MONGO_DB":    "dev_manager_test",
		"ADMIN_EMAIL": "root@devmanager.com",
	})

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.JWTSecret != "topsecret" {
		t.Errorf("JWTSecret = %q, want topsecret", cfg.JWTSecret)
	}
	if cfg.Mongo.Database != "dev_manager_test" {
		t.Errorf("Mongo.Database = %q, want dev_manager_test", cfg.Mongo.Database)
	}
	if cfg.Admin.Email != "root@devmanager.com" {
		t.Errorf("Admin.Email = %q, want root@devmanager.com", cfg.Admin.Email)
	}
}
