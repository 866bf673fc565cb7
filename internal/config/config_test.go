package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c := NewConfig(projectDir)
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if got := c.WebhookURL("content-calendar", "https://fallback.example"); got != "https://fallback.example" {
		t.Fatalf("missing config must fall back to the default URL, got %q", got)
	}
	if c.HasWebhookOverride("content-calendar") {
		t.Fatalf("no override expected")
	}
}

func TestNewConfigSwallowsCorruptFile(t *testing.T) {
	projectDir := t.TempDir()
	appDir := filepath.Join(projectDir, AppDir)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewConfig(projectDir)
	if got := c.WebhookURL("strategy-generator", "https://default.example"); got != "https://default.example" {
		t.Fatalf("corrupt config must fall back to the default, got %q", got)
	}
}

func TestSetWebhookURLPersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitAppDir(projectDir); err != nil {
		t.Fatalf("init app dir: %v", err)
	}
	c := NewConfig(projectDir)
	if err := c.SetWebhookURL("content-calendar", "https://hooks.example/cal"); err != nil {
		t.Fatalf("set webhook: %v", err)
	}

	reloaded := NewConfig(projectDir)
	if got := reloaded.WebhookURL("content-calendar", "https://fallback"); got != "https://hooks.example/cal" {
		t.Fatalf("override must survive reload, got %q", got)
	}
	if !reloaded.HasWebhookOverride("content-calendar") {
		t.Fatalf("override must be reported")
	}
	if got := reloaded.WebhookURL("strategy-generator", "https://fallback"); got != "https://fallback" {
		t.Fatalf("unrelated automations keep their default, got %q", got)
	}
}

func TestSetWebhookURLClears(t *testing.T) {
	projectDir := t.TempDir()
	c := NewConfig(projectDir)
	if err := c.SetWebhookURL("content-calendar", "https://hooks.example/cal"); err != nil {
		t.Fatalf("set webhook: %v", err)
	}
	if err := c.SetWebhookURL("content-calendar", "   "); err != nil {
		t.Fatalf("clear webhook: %v", err)
	}
	reloaded := NewConfig(projectDir)
	if reloaded.HasWebhookOverride("content-calendar") {
		t.Fatalf("cleared override must not persist")
	}
}

func TestInitAppDirCreatesStructure(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitAppDir(projectDir); err != nil {
		t.Fatalf("init app dir: %v", err)
	}
	for _, dir := range []string{"logs", "reports"} {
		if _, err := os.Stat(filepath.Join(projectDir, AppDir, dir)); err != nil {
			t.Fatalf("expected %s directory: %v", dir, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(projectDir, AppDir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected default config file: %v", err)
	}
	if !strings.Contains(string(data), "webhooks") {
		t.Fatalf("default config must mention webhooks:\n%s", data)
	}
}
