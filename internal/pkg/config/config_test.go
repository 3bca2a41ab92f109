package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("places-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Search.MaxResults != 100 {
		t.Errorf("expected default max_results 100, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.DefaultRadius != 1000 {
		t.Errorf("expected default radius 1000, got %v", cfg.Search.DefaultRadius)
	}
	if cfg.Verifier.Timeout().Milliseconds() != 5000 {
		t.Errorf("expected 5s verifier timeout, got %v", cfg.Verifier.Timeout())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLACES_SEARCH_MAX_RESULTS", "25")
	t.Setenv("PLACES_DATABASE_HOST", "db.internal")

	cfg, err := Load("places-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.MaxResults != 25 {
		t.Errorf("expected max_results 25 from env, got %d", cfg.Search.MaxResults)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected database host from env, got %s", cfg.Database.Host)
	}
}

func TestValidate_Errors(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for empty config")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, User: "places", Password: "pw", DBName: "places", SSLMode: "disable"}
	want := "postgres://places:pw@localhost:5432/places?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN mismatch:\n got %s\nwant %s", got, want)
	}
}
