package config

import (
	"strings"
	"testing"
)

// TestLoadDefaults verifies the built-in defaults apply when no config
// file is present.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Terminal.ID != "T01" {
		t.Fatalf("terminal id %q", cfg.Terminal.ID)
	}
	if cfg.Store.Currency != "USD" {
		t.Fatalf("currency %q", cfg.Store.Currency)
	}
	if cfg.Server.Addr == "" || cfg.Logging.Level != "info" {
		t.Fatalf("defaults missing: %+v", cfg)
	}
}

// TestYAMLRender verifies the effective config renders for the CLI.
func TestYAMLRender(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "terminal:") || !strings.Contains(s, "currency: USD") {
		t.Fatalf("rendered config:\n%s", s)
	}
}
