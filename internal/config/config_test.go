package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	t.Setenv("WT_ACCESS_TOKEN", "token-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AccessToken != "token-123" {
		t.Errorf("expected AccessToken to be set, got %s", cfg.AccessToken)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// Ensure required vars are unset
	os.Unsetenv("WT_ACCESS_TOKEN")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing WT_ACCESS_TOKEN, got nil")
	}
}

func TestLoad_EmptyToken(t *testing.T) {
	t.Setenv("WT_ACCESS_TOKEN", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for empty WT_ACCESS_TOKEN, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("WT_ACCESS_TOKEN", "token-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default BaseURL %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default Timeout 30s, got %v", cfg.Timeout)
	}

	if cfg.Send {
		t.Error("expected Send to default to false")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel 'info', got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "text" {
		t.Errorf("expected default LogFormat 'text', got %s", cfg.LogFormat)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WT_ACCESS_TOKEN", "token-123")
	t.Setenv("WEBEX_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("WEBEX_TIMEOUT", "5s")
	t.Setenv("COMBOT_TEAM", "  Sales ")
	t.Setenv("COMBOT_SEND", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected Timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.TeamName() != "Sales" {
		t.Errorf("expected TeamName 'Sales', got %q", cfg.TeamName())
	}
	if cfg.IsDryRun() {
		t.Error("expected IsDryRun to be false when COMBOT_SEND=true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		timeout time.Duration
		wantErr bool
	}{
		{"valid https", "https://webexapis.com/v1", time.Second, false},
		{"valid http", "http://127.0.0.1:8080", time.Second, false},
		{"relative url", "/v1", time.Second, true},
		{"bad scheme", "ftp://webexapis.com", time.Second, true},
		{"zero timeout", "https://webexapis.com/v1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AccessToken: "x", BaseURL: tt.baseURL, Timeout: tt.timeout}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDryRun(t *testing.T) {
	cfg := &Config{}
	if !cfg.IsDryRun() {
		t.Error("expected IsDryRun to return true")
	}

	cfg.Send = true
	if cfg.IsDryRun() {
		t.Error("expected IsDryRun to return false")
	}
}
